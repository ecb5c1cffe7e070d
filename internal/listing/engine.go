package listing

import (
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrFetchInFlight возвращается, когда запрос страницы уже выполняется.
var ErrFetchInFlight = errors.New("page fetch already in flight")

// Engine накапливает страницы каталога для одной области просмотра.
// Область задается либо категорией, либо платформой, но не обеими. Смена
// области сбрасывает страницу на ноль и очищает строки; ответ запроса,
// запущенного до смены, отбрасывается по счетчику поколений.
type Engine struct {
	fetcher    Fetcher
	log        *zap.Logger
	pageSize   int
	accumulate bool

	mu         sync.Mutex
	scope      repository.LinkFilter
	generation uint64
	nextPage   int
	rows       []*domain.Link
	total      int64
	hasMore    bool
	inFlight   bool
}

// NewEngine создает движок каталога с настройками листинга.
func NewEngine(fetcher Fetcher, cfg *config.Listing, log *zap.Logger) *Engine {
	size := cfg.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Engine{
		fetcher:    fetcher,
		log:        log,
		pageSize:   size,
		accumulate: cfg.Accumulate,
	}
}

// SetScope меняет область просмотра. Страница сбрасывается на ноль,
// строки очищаются, поколение увеличивается.
func (e *Engine) SetScope(filter repository.LinkFilter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scope = filter
	e.generation++
	e.nextPage = 0
	e.rows = nil
	e.total = 0
	e.hasMore = false
}

// LoadMore запрашивает следующую страницу текущей области. Одновременно
// выполняется не больше одного запроса. Ошибка чтения не фатальна:
// строки заменяются пустым списком, детали уходят в лог.
func (e *Engine) LoadMore(ctx context.Context) error {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return ErrFetchInFlight
	}
	e.inFlight = true
	gen := e.generation
	scope := e.scope
	page := e.nextPage
	e.mu.Unlock()

	links, total, err := e.fetcher.ListLinks(ctx, scope, page*e.pageSize, e.pageSize)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false

	// Область сменилась, пока запрос выполнялся: результат устарел
	if gen != e.generation {
		return nil
	}

	if err != nil {
		e.log.Error("failed to load links page",
			zap.Int("page", page),
			zap.Error(err))
		e.rows = nil
		e.total = 0
		e.hasMore = false
		return nil
	}

	if e.accumulate && page > 0 {
		e.rows = append(e.rows, links...)
	} else {
		e.rows = links
	}
	e.total = total
	e.hasMore = HasMore(page, e.pageSize, total)
	e.nextPage = page + 1

	return nil
}

// Rows возвращает копию текущих строк.
func (e *Engine) Rows() []*domain.Link {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows := make([]*domain.Link, len(e.rows))
	copy(rows, e.rows)
	return rows
}

// HasMore сообщает, есть ли еще страницы в текущей области.
func (e *Engine) HasMore() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasMore
}

// Total возвращает точное количество ссылок в текущей области.
func (e *Engine) Total() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}
