package domain

// CartItem — одна позиция корзины: снимок товара плюс количество.
// Инвариант: 1 <= Quantity <= Product.Stock (остаток на момент снимка).
type CartItem struct {
	Product
	Quantity int32
}

// Чистые функции переходов состояния корзины. Они не выполняют побочных
// эффектов: персистентность — забота вызывающего слоя (cart.Store).
// Возвращаемый флаг changed сообщает, изменилась ли последовательность.

// AddItem добавляет товар в корзину по правилам витрины:
//   - товар без остатка молча отклоняется;
//   - существующая позиция ниже переданного остатка увеличивается на 1;
//   - позиция на потолке остатка остаётся без изменений (не ошибка);
//   - новый товар добавляется в конец с количеством 1.
//
// Потолок сверяется с остатком переданного товара, а не со снимком в
// позиции: повторное добавление видит актуальный каталог. Сам снимок
// в позиции при этом не обновляется.
func AddItem(items []CartItem, product Product) ([]CartItem, bool) {
	if product.Stock <= 0 {
		return items, false
	}

	for i, item := range items {
		if item.Product.ID != product.ID {
			continue
		}
		if item.Quantity >= product.Stock {
			return items, false
		}
		next := CloneItems(items)
		next[i].Quantity++
		return next, true
	}

	next := CloneItems(items)
	next = append(next, CartItem{Product: product, Quantity: 1})
	return next, true
}

// RemoveItem удаляет позицию по идентификатору товара; отсутствие позиции — не ошибка.
func RemoveItem(items []CartItem, productID string) ([]CartItem, bool) {
	for i, item := range items {
		if item.Product.ID != productID {
			continue
		}
		next := make([]CartItem, 0, len(items)-1)
		next = append(next, CloneItems(items[:i])...)
		next = append(next, CloneItems(items[i+1:])...)
		return next, true
	}
	return items, false
}

// SetItemQuantity выставляет количество позиции:
//   - quantity == 0 эквивалентно удалению позиции;
//   - quantity < 0 отклоняется как нарушение контракта (ErrInvalidQuantity);
//   - отсутствующая позиция или превышение остатка снимка — молчаливый no-op.
func SetItemQuantity(items []CartItem, productID string, quantity int32) ([]CartItem, bool, error) {
	if quantity < 0 {
		return items, false, ErrInvalidQuantity
	}
	if quantity == 0 {
		next, changed := RemoveItem(items, productID)
		return next, changed, nil
	}

	for i, item := range items {
		if item.Product.ID != productID {
			continue
		}
		if quantity > item.Product.Stock {
			return items, false, nil
		}
		if item.Quantity == quantity {
			return items, false, nil
		}
		next := CloneItems(items)
		next[i].Quantity = quantity
		return next, true, nil
	}

	return items, false, nil
}

// ClearItems опустошает корзину.
func ClearItems(items []CartItem) ([]CartItem, bool) {
	if len(items) == 0 {
		return items, false
	}
	return []CartItem{}, true
}

// CloneItems возвращает копию последовательности позиций, чтобы избежать
// непредсказуемых мутаций извне.
func CloneItems(items []CartItem) []CartItem {
	next := make([]CartItem, len(items))
	copy(next, items)
	for i := range next {
		if len(items[i].Images) > 0 {
			next[i].Images = append([]string(nil), items[i].Images...)
		}
	}
	return next
}
