package domain

import "errors"

var (
	// ErrStorageUnavailable — персистентное хранилище корзины недоступно.
	ErrStorageUnavailable = errors.New("cart storage unavailable")
	// ErrCorruptCartData — сохранённая корзина не прошла десериализацию.
	ErrCorruptCartData = errors.New("corrupt cart data")
	// ErrInvalidQuantity — вызывающая сторона передала отрицательное количество.
	ErrInvalidQuantity = errors.New("quantity must be non-negative")

	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrProductStockNegative = errors.New("product stock must be non-negative")
	// Ошибка неизвестного состояния товара (new/used/refurbished).
	ErrProductConditionInvalid = errors.New("product condition is invalid")
	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductIDConflict — товар с таким ID уже существует.
	ErrProductIDConflict = errors.New("product id conflict")

	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующего кода валюты.
	ErrCurrencyRequired = errors.New("currency is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве в позиции заказа (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия подытога заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order subtotal does not match items sum")
	// Ошибка, если total не равен subtotal + shipping + tax.
	ErrTotalMismatch = errors.New("order total does not match components sum")
	// Ошибка неизвестного статуса заказа.
	ErrOrderStatusInvalid = errors.New("order status is invalid")
	// Ошибка недопустимого перехода статуса заказа.
	ErrOrderStatusTransition = errors.New("order status transition is not allowed")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")

	// ErrCustomerNotFound возвращается, если клиент не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// Ошибка отсутствующего email клиента.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// Ошибка некорректного email клиента.
	ErrCustomerEmailInvalid = errors.New("customer email is invalid")
	// ErrCustomerIDConflict — клиент с таким ID уже существует.
	ErrCustomerIDConflict = errors.New("customer id conflict")

	// ErrCartEmpty — оформление заказа по пустой корзине запрещено.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInsufficientStock — остаток в каталоге меньше количества в корзине.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}

// IsStorageUnavailable проверяет, относится ли ошибка к недоступности хранилища.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsCorruptCartData проверяет, относится ли ошибка к повреждённым данным корзины.
func IsCorruptCartData(err error) bool {
	return errors.Is(err, ErrCorruptCartData)
}

// IsNotFound проверяет, относится ли ошибка к отсутствующей записи.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCustomerNotFound)
}
