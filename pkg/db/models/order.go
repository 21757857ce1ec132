package models

import (
	"time"

	"github.com/angelmondragon/orderdesk-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a dispatch record owned by the user named in UserID.
// The order_number index ignores deleted_at so tombstoned numbers stay reserved.
type Order struct {
	ID             uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         string           `gorm:"column:user_id;type:varchar(255);not null;index:idx_orders_user_id"`
	OrderDate      types.Date       `gorm:"column:order_date;type:date;not null"`
	OrderNumber    string           `gorm:"column:order_number;type:varchar(255);not null;uniqueIndex:uq_orders_order_number"`
	PartyName      *string          `gorm:"column:party_name;type:varchar(255)"`
	GSTNo          *string          `gorm:"column:gst_no;type:varchar(255)"`
	PartyCity      *string          `gorm:"column:party_city;type:varchar(255)"`
	PartyPhone     *string          `gorm:"column:party_phone;type:varchar(255)"`
	Series         *string          `gorm:"column:series;type:varchar(255)"`
	CodeNo         *string          `gorm:"column:code_no;type:varchar(255)"`
	Size           *string          `gorm:"column:size;type:varchar(255)"`
	Transport      *string          `gorm:"column:transport;type:varchar(255)"`
	AutoRent       *decimal.Decimal `gorm:"column:auto_rent;type:decimal(10,2)"`
	VehicleRent    *decimal.Decimal `gorm:"column:vehicle_rent;type:decimal(10,2)"`
	PaidBy         *string          `gorm:"column:paid_by;type:varchar(255)"`
	DeliveryFrom   *string          `gorm:"column:delivery_from;type:varchar(255)"`
	PackageNo      *string          `gorm:"column:package_no;type:varchar(255)"`
	PurchaseNo     *string          `gorm:"column:purchase_no;type:varchar(255)"`
	SellBillNo     *string          `gorm:"column:sell_bill_no;type:varchar(255)"`
	TotalAmount    *decimal.Decimal `gorm:"column:total_amount;type:decimal(15,2)"`
	BankName       *string          `gorm:"column:bank_name;type:varchar(255)"`
	Date           *types.Date      `gorm:"column:date;type:date"`
	CashReceivedBy *string          `gorm:"column:cash_received_by;type:varchar(255)"`
	Confirmed      bool             `gorm:"column:confirmed;not null;default:false"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt   `gorm:"column:deleted_at;index:idx_orders_deleted_at"`
}

func (Order) TableName() string { return "orders" }
