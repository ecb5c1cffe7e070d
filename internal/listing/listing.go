package listing

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"fmt"
)

// DefaultPageSize размер страницы каталога по умолчанию.
const DefaultPageSize = 20

// Fetcher это источник страниц ссылок. Storage реализует его.
type Fetcher interface {
	ListLinks(ctx context.Context, filter repository.LinkFilter, offset, limit int) ([]*domain.Link, int64, error)
}

// Page представляет страницу ссылок вместе с точным количеством совпадений.
type Page struct {
	Links   []*domain.Link
	Total   int64
	HasMore bool
}

// HasMore сообщает, существует ли страница page+1 при размере size.
func HasMore(page, size int, total int64) bool {
	return int64((page+1)*size) < total
}

// FetchPage запрашивает строки [page*size, (page+1)*size) в порядке
// убывания created_at вместе с точным количеством для того же фильтра.
func FetchPage(ctx context.Context, fetcher Fetcher, filter repository.LinkFilter, page, size int) (*Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	links, total, err := fetcher.ListLinks(ctx, filter, page*size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch links page: %w", err)
	}

	return &Page{
		Links:   links,
		Total:   total,
		HasMore: HasMore(page, size, total),
	}, nil
}
