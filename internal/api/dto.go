package api

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/dashboard"
)

// productDTO — представление товара в HTTP API.
type productDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	Price       string    `json:"price"`
	Condition   string    `json:"condition"`
	Stock       int32     `json:"stock"`
	Category    string    `json:"category,omitempty"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceMinor:  p.PriceMinor,
		Price:       domain.FormatMinor(p.PriceMinor),
		Condition:   string(p.Condition),
		Stock:       p.Stock,
		Category:    p.Category,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductDTOs(products []domain.Product) []productDTO {
	result := make([]productDTO, 0, len(products))
	for _, p := range products {
		result = append(result, toProductDTO(p))
	}
	return result
}

// cartItemDTO — позиция корзины: снимок товара плюс количество.
type cartItemDTO struct {
	productDTO
	Quantity  int32 `json:"quantity"`
	LineMinor int64 `json:"line_minor"`
}

// cartDTO — корзина с производными суммами.
type cartDTO struct {
	Items         []cartItemDTO `json:"items"`
	ItemCount     int           `json:"item_count"`
	SubtotalMinor int64         `json:"subtotal_minor"`
	ShippingMinor int64         `json:"shipping_minor"`
	TaxMinor      int64         `json:"tax_minor"`
	TotalMinor    int64         `json:"total_minor"`
	Subtotal      string        `json:"subtotal"`
	Shipping      string        `json:"shipping"`
	Tax           string        `json:"tax"`
	Total         string        `json:"total"`
}

func toCartDTO(items []domain.CartItem, summary cart.Summary) cartDTO {
	dto := cartDTO{
		Items:         make([]cartItemDTO, 0, len(items)),
		ItemCount:     summary.ItemCount,
		SubtotalMinor: summary.SubtotalMinor,
		ShippingMinor: summary.ShippingMinor,
		TaxMinor:      summary.TaxMinor,
		TotalMinor:    summary.TotalMinor,
		Subtotal:      domain.FormatMinor(summary.SubtotalMinor),
		Shipping:      domain.FormatMinor(summary.ShippingMinor),
		Tax:           domain.FormatMinor(summary.TaxMinor),
		Total:         domain.FormatMinor(summary.TotalMinor),
	}
	for _, item := range items {
		dto.Items = append(dto.Items, cartItemDTO{
			productDTO: toProductDTO(item.Product),
			Quantity:   item.Quantity,
			LineMinor:  int64(item.Quantity) * item.Product.PriceMinor,
		})
	}
	return dto
}

// orderItemDTO — позиция заказа.
type orderItemDTO struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
	Price      string `json:"price"`
}

// orderDTO — представление заказа в HTTP API.
type orderDTO struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	Status        string         `json:"status"`
	Currency      string         `json:"currency"`
	SubtotalMinor int64          `json:"subtotal_minor"`
	ShippingMinor int64          `json:"shipping_minor"`
	TaxMinor      int64          `json:"tax_minor"`
	TotalMinor    int64          `json:"total_minor"`
	Total         string         `json:"total"`
	Items         []orderItemDTO `json:"items"`
	Version       int64          `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func toOrderDTO(o domain.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
			Price:      domain.FormatMinor(item.PriceMinor),
		})
	}
	return orderDTO{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		Status:        string(o.Status),
		Currency:      o.Currency,
		SubtotalMinor: o.SubtotalMinor,
		ShippingMinor: o.ShippingMinor,
		TaxMinor:      o.TaxMinor,
		TotalMinor:    o.TotalMinor,
		Total:         domain.FormatMinor(o.TotalMinor),
		Items:         items,
		Version:       o.Version,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderDTOs(orders []domain.Order) []orderDTO {
	result := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderDTO(o))
	}
	return result
}

// customerDTO — представление клиента в HTTP API.
type customerDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerDTO(c domain.Customer) customerDTO {
	return customerDTO{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		AvatarURL: c.AvatarURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerDTOs(customers []domain.Customer) []customerDTO {
	result := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		result = append(result, toCustomerDTO(c))
	}
	return result
}

// dashboardDTO — агрегаты админской панели.
type dashboardDTO struct {
	TotalSalesMinor   int64                   `json:"total_sales_minor"`
	TotalSales        string                  `json:"total_sales"`
	TotalOrders       int                     `json:"total_orders"`
	TotalCustomers    int                     `json:"total_customers"`
	TotalProducts     int                     `json:"total_products"`
	SalesTrendPct     float64                 `json:"sales_trend_pct"`
	OrdersTrendPct    float64                 `json:"orders_trend_pct"`
	CustomersTrendPct float64                 `json:"customers_trend_pct"`
	OrdersByStatus    map[string]int          `json:"orders_by_status"`
	MonthlySales      []dashboard.MonthlySales `json:"monthly_sales"`
	RecentOrders      []orderDTO              `json:"recent_orders"`
}

func toDashboardDTO(stats dashboard.Stats) dashboardDTO {
	byStatus := make(map[string]int, len(stats.OrdersByStatus))
	for status, count := range stats.OrdersByStatus {
		byStatus[string(status)] = count
	}
	return dashboardDTO{
		TotalSalesMinor:   stats.TotalSalesMinor,
		TotalSales:        domain.FormatMinor(stats.TotalSalesMinor),
		TotalOrders:       stats.TotalOrders,
		TotalCustomers:    stats.TotalCustomers,
		TotalProducts:     stats.TotalProducts,
		SalesTrendPct:     stats.SalesTrendPct,
		OrdersTrendPct:    stats.OrdersTrendPct,
		CustomersTrendPct: stats.CustomersTrendPct,
		OrdersByStatus:    byStatus,
		MonthlySales:      stats.MonthlySales,
		RecentOrders:      toOrderDTOs(stats.RecentOrders),
	}
}
