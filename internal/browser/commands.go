package browser

import "github.com/senyabanana/records-browser/internal/models"

// Command - действие пользователя над браузером записей.
type Command interface {
	command()
}

// ApplyFilters задаёт фильтры и загружает первую страницу. Положительный
// PageSize заодно меняет размер страницы.
type ApplyFilters struct {
	Filters  models.Filters
	PageSize int
}

// ClearFilters сбрасывает фильтры и размер страницы и загружает первую страницу.
type ClearFilters struct{}

// ChangePage сдвигает текущую страницу на Delta.
type ChangePage struct {
	Delta int
}

// GoToPage загружает страницу Page. В отличие от ChangePage повтор
// команды не сдвигает страницу дальше.
type GoToPage struct {
	Page int
}

// ChangePageSize меняет размер страницы и загружает первую страницу.
type ChangePageSize struct {
	Size int
}

// Reload заново загружает текущую страницу.
type Reload struct{}

func (ApplyFilters) command()   {}
func (ClearFilters) command()   {}
func (ChangePage) command()     {}
func (GoToPage) command()       {}
func (ChangePageSize) command() {}
func (Reload) command()         {}
