package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/senyabanana/records-browser/internal/metrics"
	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/render"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSuperseded возвращается загрузкой, которую заменила более новая.
// Такая загрузка не меняет состояние.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Сообщения статуса.
const (
	StatusLoading = "Cargando datos..."
	StatusError   = "Ocurrió un error al consultar la API. Verifica tu conexión o intenta nuevamente."
)

// Loader загружает и фильтрует страницу записей.
type Loader interface {
	FetchRecords(ctx context.Context, page, pageSize int, filters models.Filters) (*models.RecordsResult, error)
}

// State - видимое состояние браузера записей.
type State struct {
	Filters      models.Filters `json:"filters"`
	Page         int            `json:"page"`
	PageSize     int            `json:"pageSize"`
	Summary      models.Summary `json:"summary"`
	Rows         []render.Row   `json:"rows"`
	EmptyMessage string         `json:"emptyMessage,omitempty"`
	Status       string         `json:"status"`
	Loading      bool           `json:"loading"`
	PrevDisabled bool           `json:"prevDisabled"`
	NextDisabled bool           `json:"nextDisabled"`
}

// SummaryText возвращает строку сводки.
func (s State) SummaryText() string { return s.Summary.Text() }

// PageInfo возвращает подпись текущей страницы.
func (s State) PageInfo() string { return s.Summary.PageInfo(s.Page) }

// Token - маркер отмены одной загрузки. Выдача нового маркера отменяет
// предыдущий.
type Token struct {
	ID     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
}

// Context возвращает контекст загрузки.
func (t *Token) Context() context.Context { return t.ctx }

// Cancelled сообщает, что загрузка отменена.
func (t *Token) Cancelled() bool { return t.ctx.Err() != nil }

// Controller хранит состояние страницы и гарантирует, что применяется
// результат только последней выданной загрузки.
type Controller struct {
	mu              sync.Mutex
	loader          Loader
	logger          *zap.Logger
	defaultPageSize int
	state           State
	current         *Token
}

// NewController создаёт новый экземпляр Controller.
func NewController(loader Loader, logger *zap.Logger, defaultPageSize int) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPageSize < 1 {
		defaultPageSize = models.DefaultPageSize
	}
	return &Controller{
		loader:          loader,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		state: State{
			Page:         1,
			PageSize:     defaultPageSize,
			PrevDisabled: true,
		},
	}
}

// State возвращает копию текущего состояния.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch применяет команду и, если нужно, загружает страницу.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (State, error) {
	c.mu.Lock()
	page := 1
	switch cmd := cmd.(type) {
	case ApplyFilters:
		c.state.Filters = cmd.Filters.Normalize()
		if cmd.PageSize > 0 {
			c.state.PageSize = cmd.PageSize
		}
	case ClearFilters:
		c.state.Filters = models.Filters{}
		c.state.PageSize = c.defaultPageSize
	case ChangePageSize:
		c.state.PageSize = c.pageSizeOrDefault(cmd.Size)
	case ChangePage:
		page = c.state.Page + cmd.Delta
		if page < 1 {
			page = 1
		}
		if page == c.state.Page {
			state := c.state
			c.mu.Unlock()
			return state, nil
		}
	case GoToPage:
		page = cmd.Page
	case Reload:
		page = c.state.Page
	default:
		c.mu.Unlock()
		return c.State(), fmt.Errorf("unknown command %T", cmd)
	}
	c.mu.Unlock()

	return c.LoadRecords(ctx, page)
}

func (c *Controller) pageSizeOrDefault(size int) int {
	if size < 1 {
		return c.defaultPageSize
	}
	return size
}

// issueToken отменяет текущую загрузку и выдаёт маркер для новой.
// Вызывается под c.mu.
func (c *Controller) issueToken(ctx context.Context) *Token {
	if c.current != nil {
		c.current.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	tok := &Token{ID: uuid.New(), ctx: loadCtx, cancel: cancel}
	c.current = tok
	return tok
}

// LoadRecords загружает страницу page с текущими фильтрами и размером
// страницы. Если за время загрузки была выдана более новая, результат
// отбрасывается и возвращается ErrSuperseded.
func (c *Controller) LoadRecords(ctx context.Context, page int) (State, error) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	tok := c.issueToken(ctx)
	filters, pageSize := c.state.Filters, c.state.PageSize
	c.state.Loading = true
	c.state.Status = StatusLoading
	c.mu.Unlock()

	log := c.logger.With(zap.String("load", tok.ID.String()), zap.Int("page", page), zap.Int("pageSize", pageSize))
	log.Debug("loading records")

	result, err := c.loader.FetchRecords(tok.Context(), page, pageSize, filters)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != tok {
		metrics.LoadsSuperseded.Inc()
		log.Debug("load superseded", zap.Bool("cancelled", tok.Cancelled()))
		return c.state, ErrSuperseded
	}
	c.current = nil
	tok.cancel()
	c.state.Loading = false

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// отменил вызывающий, а не новая загрузка
			if c.state.Status == StatusLoading {
				c.state.Status = ""
			}
			return c.state, err
		}
		log.Error("failed to load records", zap.Error(err))
		c.state.Rows = nil
		c.state.EmptyMessage = render.FetchFailed
		c.state.Status = StatusError
		c.state.Summary = models.Summary{}
		return c.state, err
	}

	c.state.Page = page
	c.state.Rows = render.BuildRows(result.Records)
	c.state.EmptyMessage = ""
	if len(c.state.Rows) == 0 {
		c.state.EmptyMessage = render.NoResults
	}
	c.state.Summary = result.Summary
	c.state.PrevDisabled = result.PrevDisabled
	c.state.NextDisabled = result.NextDisabled
	c.state.Status = ""
	return c.state, nil
}
