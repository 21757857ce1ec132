package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
	"github.com/angelmondragon/orderdesk-backend/pkg/types"
)

// OrderFields are the optional columns shared by create and update bodies.
// Money bounds follow the decimal(10,2) and decimal(15,2) columns.
type OrderFields struct {
	PartyName      *string            `json:"party_name" validate:"omitempty,max=255"`
	GSTNo          *string            `json:"gst_no"`
	PartyCity      *string            `json:"party_city" validate:"omitempty,max=255"`
	PartyPhone     *string            `json:"party_phone" validate:"omitempty,max=15"`
	Series         *string            `json:"series" validate:"omitempty,max=255"`
	CodeNo         *string            `json:"code_no" validate:"omitempty,max=255"`
	Size           *string            `json:"size" validate:"omitempty,dimensions"`
	Transport      *string            `json:"transport" validate:"omitempty,max=255"`
	AutoRent       *types.LooseString `json:"auto_rent" validate:"omitempty,numeric,money=99999999.99"`
	VehicleRent    *types.LooseString `json:"vehicle_rent" validate:"omitempty,numeric,money=99999999.99"`
	PaidBy         *string            `json:"paid_by" validate:"omitempty,max=255"`
	DeliveryFrom   *string            `json:"delivery_from" validate:"omitempty,max=255"`
	PackageNo      *string            `json:"package_no" validate:"omitempty,max=255"`
	PurchaseNo     *string            `json:"purchase_no" validate:"omitempty,max=255"`
	SellBillNo     *string            `json:"sell_bill_no" validate:"omitempty,max=255"`
	TotalAmount    *types.LooseString `json:"total_amount" validate:"omitempty,numeric,money=9999999999999.99"`
	BankName       *string            `json:"bank_name" validate:"omitempty,max=255"`
	Date           *string            `json:"date" validate:"omitempty,calendar_date"`
	CashReceivedBy *string            `json:"cash_received_by" validate:"omitempty,max=255"`
}

// CreateOrderRequest is the body of POST /api/order.
type CreateOrderRequest struct {
	UserID      types.LooseString `json:"user_id" validate:"required,max=255"`
	OrderDate   string            `json:"order_date" validate:"required,calendar_date"`
	OrderNumber string            `json:"order_number" validate:"required,max=255"`
	OrderFields
}

// UpdateOrderRequest is the body of PUT /api/order/{id}. Keys present in the
// body are written, including explicit nulls; absent keys keep their value.
type UpdateOrderRequest struct {
	UserID      types.LooseString `json:"user_id" validate:"required,max=255"`
	OrderDate   *string           `json:"order_date" validate:"omitempty,calendar_date"`
	OrderNumber string            `json:"order_number" validate:"required,max=255"`
	OrderFields

	present map[string]bool
}

func (r *UpdateOrderRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateOrderRequest
	var body plain
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = UpdateOrderRequest(body)
	r.present = make(map[string]bool, len(keys))
	for key := range keys {
		r.present[key] = true
	}
	return nil
}

// touched reports whether field should be written. Requests built in code
// rather than decoded treat every non-nil field as present.
func (r UpdateOrderRequest) touched(field string, set bool) bool {
	if r.present == nil {
		return set
	}
	return r.present[field]
}

// ConfirmRequest is the body of PATCH /api/order/{id}/confirm.
type ConfirmRequest struct {
	Confirmed types.LooseString `json:"confirmed" validate:"required,oneof=0 1"`
}

// OrderDTO is the transport shape of an order. Money columns are rendered with two decimals.
type OrderDTO struct {
	ID             uint64      `json:"id"`
	UserID         string      `json:"user_id"`
	OrderDate      types.Date  `json:"order_date"`
	OrderNumber    string      `json:"order_number"`
	PartyName      *string     `json:"party_name"`
	GSTNo          *string     `json:"gst_no"`
	PartyCity      *string     `json:"party_city"`
	PartyPhone     *string     `json:"party_phone"`
	Series         *string     `json:"series"`
	CodeNo         *string     `json:"code_no"`
	Size           *string     `json:"size"`
	Transport      *string     `json:"transport"`
	AutoRent       *string     `json:"auto_rent"`
	VehicleRent    *string     `json:"vehicle_rent"`
	PaidBy         *string     `json:"paid_by"`
	DeliveryFrom   *string     `json:"delivery_from"`
	PackageNo      *string     `json:"package_no"`
	PurchaseNo     *string     `json:"purchase_no"`
	SellBillNo     *string     `json:"sell_bill_no"`
	TotalAmount    *string     `json:"total_amount"`
	BankName       *string     `json:"bank_name"`
	Date           *types.Date `json:"date"`
	CashReceivedBy *string     `json:"cash_received_by"`
	Confirmed      bool        `json:"confirmed"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ListResult is the payload of both order listings.
type ListResult struct {
	TotalRecords int        `json:"totalRecords"`
	Orders       []OrderDTO `json:"orders"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		OrderDate:      o.OrderDate,
		OrderNumber:    o.OrderNumber,
		PartyName:      o.PartyName,
		GSTNo:          o.GSTNo,
		PartyCity:      o.PartyCity,
		PartyPhone:     o.PartyPhone,
		Series:         o.Series,
		CodeNo:         o.CodeNo,
		Size:           o.Size,
		Transport:      o.Transport,
		AutoRent:       money(o.AutoRent),
		VehicleRent:    money(o.VehicleRent),
		PaidBy:         o.PaidBy,
		DeliveryFrom:   o.DeliveryFrom,
		PackageNo:      o.PackageNo,
		PurchaseNo:     o.PurchaseNo,
		SellBillNo:     o.SellBillNo,
		TotalAmount:    money(o.TotalAmount),
		BankName:       o.BankName,
		Date:           o.Date,
		CashReceivedBy: o.CashReceivedBy,
		Confirmed:      o.Confirmed,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func FromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func money(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
