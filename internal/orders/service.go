package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/internal/policy"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/metrics"
	"github.com/angelmondragon/orderdesk-backend/pkg/types"
	"github.com/angelmondragon/orderdesk-backend/pkg/validation"
)

const (
	MsgNotFoundOrUnauthorized = "Order not found or unauthorized access."
	MsgNotFound               = "Order not found."
	MsgDeleteFailed           = "Failed to delete the order."
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventRecorder interface {
	IncOrderEvent(event string)
}

// Service implements the order endpoints on behalf of an explicit actor.
type Service interface {
	List(ctx context.Context, actor policy.Actor) (*ListResult, error)
	ListConfirmed(ctx context.Context, actor policy.Actor) (*ListResult, error)
	Get(ctx context.Context, actor policy.Actor, id uint64) (*OrderDTO, error)
	Create(ctx context.Context, actor policy.Actor, req CreateOrderRequest) (*OrderDTO, error)
	Update(ctx context.Context, actor policy.Actor, id uint64, req UpdateOrderRequest) (*OrderDTO, error)
	Delete(ctx context.Context, actor policy.Actor, id uint64) error
	Confirm(ctx context.Context, actor policy.Actor, id uint64, req ConfirmRequest) (*OrderDTO, error)
}

// ServiceParams bundles the dependencies of the orders service. Metrics is optional.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Metrics *metrics.DomainMetrics
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics eventRecorder
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{repo: params.Repo, tx: params.Tx, metrics: params.Metrics}, nil
}

func (s *service) List(ctx context.Context, actor policy.Actor) (*ListResult, error) {
	return s.list(ctx, actor, ListFilter{})
}

func (s *service) ListConfirmed(ctx context.Context, actor policy.Actor) (*ListResult, error) {
	return s.list(ctx, actor, ListFilter{ConfirmedOnly: true})
}

func (s *service) list(ctx context.Context, actor policy.Actor, filter ListFilter) (*ListResult, error) {
	rows, err := s.repo.List(ctx, policy.For(actor).OrderScope(), filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return &ListResult{TotalRecords: len(rows), Orders: FromModels(rows)}, nil
}

func (s *service) Get(ctx context.Context, actor policy.Actor, id uint64) (*OrderDTO, error) {
	order, err := findOrder(ctx, s.repo, policy.For(actor).OrderScope(), id, MsgNotFoundOrUnauthorized)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) Create(ctx context.Context, actor policy.Actor, req CreateOrderRequest) (*OrderDTO, error) {
	req.UserID = types.LooseString(strings.TrimSpace(req.UserID.String()))
	req.OrderDate = strings.TrimSpace(req.OrderDate)
	req.OrderNumber = strings.TrimSpace(req.OrderNumber)
	req.OrderFields = cleanFields(req.OrderFields)
	errs := validation.Struct(req)

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := checkOrderNumber(ctx, repo, req.OrderNumber, 0, errs); err != nil {
			return err
		}
		if err := errs.Err(); err != nil {
			return err
		}
		if err := policy.For(actor).CanAssignOrderOwner(req.UserID.String()); err != nil {
			return err
		}

		orderDate, _ := types.ParseDate(req.OrderDate)
		order := &models.Order{
			UserID:      req.UserID.String(),
			OrderDate:   orderDate,
			OrderNumber: req.OrderNumber,
		}
		applyFields(order, req.OrderFields, func(string, bool) bool { return true })
		if err := repo.Create(ctx, order); err != nil {
			return translateWriteError(err, "create order")
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record("created")
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, actor policy.Actor, id uint64, req UpdateOrderRequest) (*OrderDTO, error) {
	pol := policy.For(actor)
	req.UserID = types.LooseString(strings.TrimSpace(req.UserID.String()))
	req.OrderDate = validation.Clean(req.OrderDate)
	req.OrderNumber = strings.TrimSpace(req.OrderNumber)
	req.OrderFields = cleanFields(req.OrderFields)

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := findOrder(ctx, repo, pol.OrderScope(), id, MsgNotFoundOrUnauthorized)
		if err != nil {
			return err
		}

		errs := validation.Struct(req)
		if err := checkOrderNumber(ctx, repo, req.OrderNumber, order.ID, errs); err != nil {
			return err
		}
		if err := errs.Err(); err != nil {
			return err
		}
		if req.UserID.String() != order.UserID {
			if err := pol.CanAssignOrderOwner(req.UserID.String()); err != nil {
				return err
			}
		}

		order.UserID = req.UserID.String()
		order.OrderNumber = req.OrderNumber
		if req.OrderDate != nil {
			order.OrderDate, _ = types.ParseDate(*req.OrderDate)
		}
		applyFields(order, req.OrderFields, req.touched)
		if err := repo.Save(ctx, order); err != nil {
			return translateWriteError(err, "update order")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record("updated")
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actor policy.Actor, id uint64) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := findOrder(ctx, repo, policy.For(actor).OrderScope(), id, MsgNotFoundOrUnauthorized)
		if err != nil {
			return err
		}
		affected, err := repo.SoftDelete(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, MsgDeleteFailed).Public()
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeInternal, MsgDeleteFailed).Public()
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.record("deleted")
	return nil
}

func (s *service) Confirm(ctx context.Context, actor policy.Actor, id uint64, req ConfirmRequest) (*OrderDTO, error) {
	if err := policy.For(actor).CanConfirmOrders(); err != nil {
		return nil, err
	}
	req.Confirmed = types.LooseString(strings.TrimSpace(req.Confirmed.String()))
	if err := validation.Struct(req).Err(); err != nil {
		return nil, err
	}
	confirmed := req.Confirmed == "1"

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := findOrder(ctx, repo, policy.Scope{}, id, MsgNotFound)
		if err != nil {
			return err
		}
		if err := repo.SetConfirmed(ctx, found, confirmed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirm order")
		}
		found.Confirmed = confirmed
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if confirmed {
		s.record("confirmed")
	} else {
		s.record("unconfirmed")
	}
	return FromModel(order), nil
}

func (s *service) record(event string) {
	if s.metrics != nil {
		s.metrics.IncOrderEvent(event)
	}
}

func findOrder(ctx context.Context, repo Repository, scope policy.Scope, id uint64, notFound string) (*models.Order, error) {
	order, err := repo.Find(ctx, scope, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

// checkOrderNumber flags a number held by any other row, tombstoned ones included.
func checkOrderNumber(ctx context.Context, repo Repository, number string, excludeID uint64, errs validation.FieldErrors) error {
	if number == "" || errs.Has("order_number") {
		return nil
	}
	taken, err := repo.OrderNumberTaken(ctx, number, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check unique order_number")
	}
	if taken {
		errs.Add("order_number", validation.TakenMessage("order_number"))
	}
	return nil
}

func translateWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "order_number") {
		return validation.Unique("order_number").Err()
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func cleanFields(f OrderFields) OrderFields {
	f.PartyName = validation.Clean(f.PartyName)
	f.GSTNo = validation.Clean(f.GSTNo)
	f.PartyCity = validation.Clean(f.PartyCity)
	f.PartyPhone = validation.Clean(f.PartyPhone)
	f.Series = validation.Clean(f.Series)
	f.CodeNo = validation.Clean(f.CodeNo)
	f.Size = validation.Clean(f.Size)
	f.Transport = validation.Clean(f.Transport)
	f.AutoRent = cleanLoose(f.AutoRent)
	f.VehicleRent = cleanLoose(f.VehicleRent)
	f.PaidBy = validation.Clean(f.PaidBy)
	f.DeliveryFrom = validation.Clean(f.DeliveryFrom)
	f.PackageNo = validation.Clean(f.PackageNo)
	f.PurchaseNo = validation.Clean(f.PurchaseNo)
	f.SellBillNo = validation.Clean(f.SellBillNo)
	f.TotalAmount = cleanLoose(f.TotalAmount)
	f.BankName = validation.Clean(f.BankName)
	f.Date = validation.Clean(f.Date)
	f.CashReceivedBy = validation.Clean(f.CashReceivedBy)
	return f
}

func cleanLoose(value *types.LooseString) *types.LooseString {
	if value == nil {
		return nil
	}
	raw := value.String()
	cleaned := validation.Clean(&raw)
	if cleaned == nil {
		return nil
	}
	out := types.LooseString(*cleaned)
	return &out
}

// applyFields copies the validated optional columns onto order. write decides,
// per json field, whether the incoming value replaces the stored one.
func applyFields(order *models.Order, f OrderFields, write func(field string, set bool) bool) {
	setString := func(field string, dst **string, src *string) {
		if write(field, src != nil) {
			*dst = src
		}
	}
	setMoney := func(field string, dst **decimal.Decimal, src *types.LooseString) {
		if !write(field, src != nil) {
			return
		}
		*dst = toDecimal(src)
	}

	setString("party_name", &order.PartyName, f.PartyName)
	setString("gst_no", &order.GSTNo, f.GSTNo)
	setString("party_city", &order.PartyCity, f.PartyCity)
	setString("party_phone", &order.PartyPhone, f.PartyPhone)
	setString("series", &order.Series, f.Series)
	setString("code_no", &order.CodeNo, f.CodeNo)
	setString("size", &order.Size, f.Size)
	setString("transport", &order.Transport, f.Transport)
	setMoney("auto_rent", &order.AutoRent, f.AutoRent)
	setMoney("vehicle_rent", &order.VehicleRent, f.VehicleRent)
	setString("paid_by", &order.PaidBy, f.PaidBy)
	setString("delivery_from", &order.DeliveryFrom, f.DeliveryFrom)
	setString("package_no", &order.PackageNo, f.PackageNo)
	setString("purchase_no", &order.PurchaseNo, f.PurchaseNo)
	setString("sell_bill_no", &order.SellBillNo, f.SellBillNo)
	setMoney("total_amount", &order.TotalAmount, f.TotalAmount)
	setString("bank_name", &order.BankName, f.BankName)
	setString("cash_received_by", &order.CashReceivedBy, f.CashReceivedBy)

	if write("date", f.Date != nil) {
		order.Date = nil
		if f.Date != nil {
			if parsed, err := types.ParseDate(*f.Date); err == nil {
				order.Date = &parsed
			}
		}
	}
}

func toDecimal(value *types.LooseString) *decimal.Decimal {
	if value == nil {
		return nil
	}
	amount, err := decimal.NewFromString(value.String())
	if err != nil {
		return nil
	}
	amount = amount.Round(2)
	return &amount
}
