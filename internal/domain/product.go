package domain

import (
	"sort"
	"strings"
	"time"
)

// ProductCondition описывает состояние товара в каталоге.
type ProductCondition string

const (
	ConditionNew         ProductCondition = "new"
	ConditionUsed        ProductCondition = "used"
	ConditionRefurbished ProductCondition = "refurbished"
)

// Valid проверяет, что состояние товара входит в известный набор.
func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	default:
		return false
	}
}

// Product представляет товар каталога. Корзина хранит снимок товара
// на момент добавления и не обновляет его вслед за каталогом.
type Product struct {
	ID          string
	Name        string
	Description string
	// PriceMinor — цена в минимальных денежных единицах (центы).
	PriceMinor int64
	Condition  ProductCondition
	// Stock — максимально продаваемое количество на момент снимка.
	Stock     int32
	Category  string
	Images    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrProductStockNegative)
	}
	if !p.Condition.Valid() {
		errs = append(errs, ErrProductConditionInvalid)
	}

	return errs
}

// ProductSort определяет порядок сортировки выборки каталога.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
)

// ProductFilter описывает критерии выборки каталога. Нулевые значения
// означают отсутствие соответствующего ограничения.
type ProductFilter struct {
	Category  string
	Condition ProductCondition
	// MinPriceMinor/MaxPriceMinor задают ценовой диапазон; Max <= 0 — без верхней границы.
	MinPriceMinor int64
	MaxPriceMinor int64
	// Query — подстрока для поиска по названию и описанию (без учёта регистра).
	Query string
	Sort  ProductSort
}

// Matches проверяет, удовлетворяет ли товар фильтру.
func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Condition != "" && p.Condition != f.Condition {
		return false
	}
	if p.PriceMinor < f.MinPriceMinor {
		return false
	}
	if f.MaxPriceMinor > 0 && p.PriceMinor > f.MaxPriceMinor {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		needle := strings.ToLower(q)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}

// SortProducts упорядочивает выборку на месте согласно заданному порядку.
// Неизвестный порядок трактуется как SortNewest.
func SortProducts(products []Product, order ProductSort) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceMinor < products[j].PriceMinor
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceMinor > products[j].PriceMinor
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
