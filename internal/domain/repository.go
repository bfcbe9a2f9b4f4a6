package domain

// ProductRepository описывает требования к хранилищу каталога товаров.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ошибку, если ID уже занят.
	Create(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// List возвращает товары, удовлетворяющие фильтру, в заданном порядке.
	List(filter ProductFilter) ([]Product, error)
	// Update перезаписывает товар или возвращает ErrProductNotFound.
	Update(product Product) error
	// Delete удаляет товар или возвращает ErrProductNotFound.
	Delete(id string) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ошибку, если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
	// ListAll возвращает заказы всех клиентов, новые первыми (админский срез).
	ListAll(limit int) ([]Order, error)
	// Save применяет обновления к заказу с учётом optimistic locking.
	Save(order Order) error
}

// CustomerRepository описывает требования к хранилищу профилей клиентов.
type CustomerRepository interface {
	// Create сохраняет новый профиль. Возвращает ошибку, если ID уже занят.
	Create(customer Customer) error
	// Get возвращает профиль по идентификатору или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	// List возвращает профили, новые первыми, с опциональным ограничением.
	List(limit int) ([]Customer, error)
	// Update перезаписывает профиль или возвращает ErrCustomerNotFound.
	Update(customer Customer) error
	// Delete удаляет профиль или возвращает ErrCustomerNotFound.
	Delete(id string) error
}
