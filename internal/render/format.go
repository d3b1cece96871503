package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/records-browser/internal/models"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Подписи-заглушки для отсутствующих данных.
const (
	NotAvailable     = "No disponible"
	NoDate           = "Sin fecha"
	NoTitle          = "Sin título"
	NoBuyer          = "Sin información"
	NoDepartment     = "No registrado"
	NoClassification = "No especificado"
	NoResults        = "No hay resultados que coincidan con los filtros actuales."
	FetchFailed      = "No se pudieron obtener los datos de la API."
)

// DefaultCurrency - валюта, если в записи она не указана.
const DefaultCurrency = "PEN"

var (
	locale  = language.MustParse("es-PE")
	penUnit = currency.MustParseISO(DefaultCurrency)

	// Перу живёт в UTC-5 без перехода на летнее время.
	limaTime = time.FixedZone("PET", -5*60*60)

	shortMonths = [...]string{
		"ene.", "feb.", "mar.", "abr.", "may.", "jun.",
		"jul.", "ago.", "set.", "oct.", "nov.", "dic.",
	}

	dateLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// FormatCurrency форматирует сумму для локали es-PE с не более чем двумя
// знаками после запятой. Знак минуса ставится перед символом валюты.
// Нечисловая сумма даёт NotAvailable.
func FormatCurrency(amount models.Number, code string) string {
	if !amount.Valid {
		return NotAvailable
	}

	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil || unit == (currency.Unit{}) {
		unit = penUnit
	}
	scale, _ := currency.Standard.Rounding(unit)
	if scale > 2 {
		scale = 2
	}

	p := message.NewPrinter(locale)
	value, sign := amount.Value, ""
	if value < 0 {
		value, sign = -value, "-"
	}
	return sign + p.Sprintf("%v %v", currencySymbol(p, unit), number.Decimal(value, number.Scale(scale)))
}

// currencySymbol возвращает символ валюты для локали. Если у локали нет
// своего символа (печатается ISO-код), берётся узкий символ.
func currencySymbol(p *message.Printer, unit currency.Unit) string {
	symbol := p.Sprint(currency.Symbol(unit))
	if symbol == unit.String() {
		return p.Sprint(currency.NarrowSymbol(unit))
	}
	return symbol
}

// ParseDate разбирает дату в формате ISO 8601.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate возвращает короткую дату вида "05 mar. 2024".
// Пустая дата даёт NoDate, неразборчивая возвращается как есть.
func FormatDate(value string) string {
	if value == "" {
		return NoDate
	}
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	if hasZone(value) {
		t = t.In(limaTime)
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// hasZone сообщает, указана ли в строке даты временная зона.
func hasZone(value string) bool {
	if strings.HasSuffix(value, "Z") || strings.HasSuffix(value, "z") {
		return true
	}
	i := strings.LastIndexAny(value, "+-")
	return i > len("2006-01-02") && strings.Contains(value[i:], ":")
}
