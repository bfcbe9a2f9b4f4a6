package cart

import (
	"encoding/json"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// storedItem — формат одной позиции в персистентном хранилище.
// Снимок товара сохраняется целиком: корзина не обращается к каталогу
// при восстановлении.
type storedItem struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PriceMinor  int64    `json:"price_minor"`
	Stock       int32    `json:"stock"`
	Condition   string   `json:"condition"`
	Category    string   `json:"category"`
	Images      []string `json:"images,omitempty"`
	Quantity    int32    `json:"quantity"`
}

// encodeItems сериализует последовательность позиций в JSON.
func encodeItems(items []domain.CartItem) (string, error) {
	stored := make([]storedItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, storedItem{
			ProductID:   item.Product.ID,
			Name:        item.Product.Name,
			Description: item.Product.Description,
			PriceMinor:  item.Product.PriceMinor,
			Stock:       item.Product.Stock,
			Condition:   string(item.Product.Condition),
			Category:    item.Product.Category,
			Images:      item.Product.Images,
			Quantity:    item.Quantity,
		})
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(payload), nil
}

// decodeItems восстанавливает последовательность позиций из JSON.
// Любая некорректная запись отбрасывает корзину целиком: частичная
// загрузка запрещена, fail-safe — пустая корзина.
func decodeItems(payload string) ([]domain.CartItem, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCartData, err)
	}

	items := make([]domain.CartItem, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for i, s := range stored {
		if err := validateStoredItem(s); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrCorruptCartData, i, err)
		}
		if seen[s.ProductID] {
			return nil, fmt.Errorf("%w: duplicate product id %s", domain.ErrCorruptCartData, s.ProductID)
		}
		seen[s.ProductID] = true

		items = append(items, domain.CartItem{
			Product: domain.Product{
				ID:          s.ProductID,
				Name:        s.Name,
				Description: s.Description,
				PriceMinor:  s.PriceMinor,
				Stock:       s.Stock,
				Condition:   domain.ProductCondition(s.Condition),
				Category:    s.Category,
				Images:      s.Images,
			},
			Quantity: s.Quantity,
		})
	}

	return items, nil
}

func validateStoredItem(s storedItem) error {
	if s.ProductID == "" {
		return fmt.Errorf("product id is empty")
	}
	if s.Quantity < 1 {
		return fmt.Errorf("quantity %d is below 1", s.Quantity)
	}
	if s.PriceMinor < 0 {
		return fmt.Errorf("price %d is negative", s.PriceMinor)
	}
	if s.Stock < 0 {
		return fmt.Errorf("stock %d is negative", s.Stock)
	}
	// Количество не могло превысить остаток снимка на момент записи.
	if s.Quantity > s.Stock {
		return fmt.Errorf("quantity %d exceeds snapshot stock %d", s.Quantity, s.Stock)
	}
	return nil
}
