package domain

import "fmt"

const (
	defaultTaxRateBasisPoints         = 800
	defaultFreeShippingThresholdMinor = 10000
	defaultFlatShippingRateMinor      = 999
)

// PricingPolicy задаёт параметры расчёта стоимости заказа. Все суммы
// считаются в минимальных денежных единицах, чтобы исключить дрейф
// плавающей точки.
type PricingPolicy struct {
	// TaxRateBasisPoints — налоговая ставка в базисных пунктах (800 = 8%).
	TaxRateBasisPoints int64
	// FreeShippingThresholdMinor — подытог, начиная с которого доставка бесплатна.
	FreeShippingThresholdMinor int64
	// FlatShippingRateMinor — фиксированная стоимость доставки ниже порога.
	FlatShippingRateMinor int64
}

// DefaultPricingPolicy возвращает политику витрины по умолчанию:
// налог 8%, бесплатная доставка от 100.00, иначе 9.99.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRateBasisPoints:         defaultTaxRateBasisPoints,
		FreeShippingThresholdMinor: defaultFreeShippingThresholdMinor,
		FlatShippingRateMinor:      defaultFlatShippingRateMinor,
	}
}

// SubtotalMinor возвращает сумму цена × количество по всем позициям.
func SubtotalMinor(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceMinor * int64(item.Quantity)
	}
	return total
}

// ShippingMinor возвращает стоимость доставки для данного подытога.
func (p PricingPolicy) ShippingMinor(subtotalMinor int64) int64 {
	if subtotalMinor >= p.FreeShippingThresholdMinor {
		return 0
	}
	return p.FlatShippingRateMinor
}

// TaxMinor возвращает налог на подытог, округлённый half-up до цента.
func (p PricingPolicy) TaxMinor(subtotalMinor int64) int64 {
	if subtotalMinor <= 0 {
		return 0
	}
	return (subtotalMinor*p.TaxRateBasisPoints + 5000) / 10000
}

// TotalMinor возвращает подытог + доставку + налог для последовательности позиций.
func (p PricingPolicy) TotalMinor(items []CartItem) int64 {
	subtotal := SubtotalMinor(items)
	return subtotal + p.ShippingMinor(subtotal) + p.TaxMinor(subtotal)
}

// FormatMinor форматирует сумму в минимальных единицах как строку с двумя знаками.
func FormatMinor(amountMinor int64) string {
	sign := ""
	if amountMinor < 0 {
		sign = "-"
		amountMinor = -amountMinor
	}
	return fmt.Sprintf("%s%d.%02d", sign, amountMinor/100, amountMinor%100)
}
