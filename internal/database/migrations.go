package database

import (
	"LinkHub-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	// Порядок миграций важен из-за внешних ключей
	models := []interface{}{
		&domain.Category{}, // Сначала справочники
		&domain.Platform{},
		&domain.User{},      // Затем пользователи
		&domain.Link{},      // Ссылки (зависят от справочников и пользователей)
		&domain.Report{},    // Жалобы (зависят от ссылок и пользователей)
		&domain.AdminRole{}, // Множество администраторов
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Info("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData заполняет базу данных начальными данными
func SeedData(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database seeding")

	// Платформы: фиксированный набор
	var platformCount int64
	db.Model(&domain.Platform{}).Count(&platformCount)
	if platformCount == 0 {
		platforms := []domain.Platform{
			{Name: domain.PlatformWhatsApp},
			{Name: domain.PlatformTelegram},
			{Name: domain.PlatformFacebook},
		}

		if err := db.Create(&platforms).Error; err != nil {
			log.Error("failed to seed platforms", zap.Error(err))
			return fmt.Errorf("failed to seed platforms: %w", err)
		}
		log.Info("seeded platforms", zap.Int("count", len(platforms)))
	} else {
		log.Info("platforms already exist, skipping seeding", zap.Int64("existing_count", platformCount))
	}

	// Стартовые категории каталога
	var categoryCount int64
	db.Model(&domain.Category{}).Count(&categoryCount)
	if categoryCount == 0 {
		categories := []domain.Category{
			{Name: "Estudio"},
			{Name: "Tecnología"},
			{Name: "Deportes"},
			{Name: "Música"},
			{Name: "Negocios"},
			{Name: "Entretenimiento"},
		}

		if err := db.Create(&categories).Error; err != nil {
			log.Error("failed to seed categories", zap.Error(err))
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		log.Info("seeded categories", zap.Int("count", len(categories)))
	} else {
		log.Info("categories already exist, skipping seeding", zap.Int64("existing_count", categoryCount))
	}

	log.Info("database seeding completed successfully")
	return nil
}
