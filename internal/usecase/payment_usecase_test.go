package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type paymentFixture struct {
	uc       *PaymentUseCase
	requests *fakeRequestRepo
	payments *fakePaymentRepo
	methods  *fakeMethodRepo
	products *fakeProductRepo
	users    *fakeUserRepo
	outbox   *fakeOutboxRepo
	files    *fakeFiles
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	seller := &domain.User{ID: 1, Username: "seller", FirstName: "Сергей"}
	buyer := &domain.User{ID: 2, Username: "buyer", FirstName: "Анна"}
	product := &domain.Product{
		ID:         10,
		OwnerID:    seller.ID,
		Title:      "Чайник",
		CategoryID: 1,
		Price:      decimal.RequireFromString("19.99"),
		IsActive:   true,
	}

	f := &paymentFixture{
		requests: newFakeRequestRepo(),
		payments: &fakePaymentRepo{},
		methods:  &fakeMethodRepo{},
		products: newFakeProductRepo(product),
		users:    newFakeUserRepo(seller, buyer),
		outbox:   &fakeOutboxRepo{},
		files:    &fakeFiles{},
	}
	f.uc = NewPaymentUC(
		f.requests, f.payments, f.methods, f.products, f.users,
		f.outbox, f.files, fakeDB{}, nopLogger{},
	)
	return f
}

func buyerPrincipal() domain.Principal {
	return domain.Principal{UserID: 2, Username: "buyer", FirstName: "Анна"}
}

func sellerPrincipal() domain.Principal {
	return domain.Principal{UserID: 1, Username: "seller", FirstName: "Сергей"}
}

func adminPrincipal() domain.Principal {
	return domain.Principal{UserID: 99, Username: "admin", IsAdmin: true}
}

func checkUpload() FileUpload {
	return FileUpload{Data: []byte("png"), MimeType: "image/png", Size: 3, Name: "check.png"}
}

func TestCreateRequest(t *testing.T) {
	t.Run("total price is exact decimal quantity times price", func(t *testing.T) {
		f := newPaymentFixture(t)

		created, err := f.uc.CreateRequest(context.Background(), buyerPrincipal(), &CreatePaymentRequestReq{
			ProductID: 10,
			Quantity:  3,
			Check:     checkUpload(),
		})
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}

		want := decimal.RequireFromString("59.97")
		if !created.TotalPrice.Equal(want) {
			t.Errorf("TotalPrice = %s, want %s", created.TotalPrice, want)
		}
		if created.Status != domain.StatusInProcessing {
			t.Errorf("Status = %s, want %s", created.Status, domain.StatusInProcessing)
		}
		if len(f.outbox.events) != 1 || f.outbox.events[0].EventType != EventRequestCreated {
			t.Errorf("outbox events = %v, want one %s", f.outbox.events, EventRequestCreated)
		}
	})

	t.Run("price changes after creation do not affect total", func(t *testing.T) {
		f := newPaymentFixture(t)

		created, err := f.uc.CreateRequest(context.Background(), buyerPrincipal(), &CreatePaymentRequestReq{
			ProductID: 10,
			Quantity:  2,
			Check:     checkUpload(),
		})
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}

		f.products.products[10].Price = decimal.RequireFromString("99.99")

		stored, err := f.requests.GetByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		want := decimal.RequireFromString("39.98")
		if !stored.TotalPrice.Equal(want) {
			t.Errorf("TotalPrice = %s, want frozen %s", stored.TotalPrice, want)
		}
	})

	t.Run("quantity below one is rejected before any writes", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.CreateRequest(context.Background(), buyerPrincipal(), &CreatePaymentRequestReq{
			ProductID: 10,
			Quantity:  0,
			Check:     checkUpload(),
		})
		if !errors.Is(err, e.ErrQuantityTooSmall) {
			t.Fatalf("err = %v, want %v", err, e.ErrQuantityTooSmall)
		}
		if len(f.requests.requests) != 0 {
			t.Errorf("requests stored = %d, want 0", len(f.requests.requests))
		}
		if len(f.files.uploaded) != 0 {
			t.Errorf("files uploaded = %v, want none", f.files.uploaded)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.CreateRequest(context.Background(), buyerPrincipal(), &CreatePaymentRequestReq{
			ProductID: 404,
			Quantity:  1,
			Check:     checkUpload(),
		})
		if !errors.Is(err, e.ErrProductNotFound) {
			t.Fatalf("err = %v, want %v", err, e.ErrProductNotFound)
		}
	})
}

func TestTransition(t *testing.T) {
	createRequest := func(t *testing.T, f *paymentFixture) *domain.PaymentRequest {
		t.Helper()
		created, err := f.uc.CreateRequest(context.Background(), buyerPrincipal(), &CreatePaymentRequestReq{
			ProductID: 10,
			Quantity:  3,
			Check:     checkUpload(),
		})
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
		return created
	}

	t.Run("accept creates exactly one payment with frozen snapshots", func(t *testing.T) {
		f := newPaymentFixture(t)
		request := createRequest(t, f)

		res, err := f.uc.Transition(context.Background(), sellerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.StatusAccepted,
		})
		if err != nil {
			t.Fatalf("Transition: %v", err)
		}
		if !res.Changed {
			t.Error("Changed = false, want true")
		}
		if res.Request.Status != domain.StatusAccepted {
			t.Errorf("Status = %s, want %s", res.Request.Status, domain.StatusAccepted)
		}

		if len(f.payments.payments) != 1 {
			t.Fatalf("payments = %d, want 1", len(f.payments.payments))
		}
		payment := f.payments.payments[0]
		if payment.BuyerName != "Анна" {
			t.Errorf("BuyerName = %q, want %q", payment.BuyerName, "Анна")
		}
		if payment.ProductTitle != "Чайник" {
			t.Errorf("ProductTitle = %q, want %q", payment.ProductTitle, "Чайник")
		}
		if !payment.TotalPrice.Equal(decimal.RequireFromString("59.97")) {
			t.Errorf("TotalPrice = %s, want 59.97", payment.TotalPrice)
		}
		if payment.SellerID != 1 {
			t.Errorf("SellerID = %d, want 1", payment.SellerID)
		}
	})

	t.Run("reject creates no payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		request := createRequest(t, f)

		res, err := f.uc.Transition(context.Background(), sellerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.StatusRejected,
		})
		if err != nil {
			t.Fatalf("Transition: %v", err)
		}
		if !res.Changed {
			t.Error("Changed = false, want true")
		}
		if len(f.payments.payments) != 0 {
			t.Errorf("payments = %d, want 0", len(f.payments.payments))
		}
	})

	t.Run("second accept is a no-op and keeps a single payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		request := createRequest(t, f)

		if _, err := f.uc.Transition(context.Background(), sellerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.StatusAccepted,
		}); err != nil {
			t.Fatalf("first Transition: %v", err)
		}

		res, err := f.uc.Transition(context.Background(), sellerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.StatusAccepted,
		})
		if err != nil {
			t.Fatalf("second Transition: %v", err)
		}
		if res.Changed {
			t.Error("Changed = true on finalized request, want false")
		}
		if res.Request.Status != domain.StatusAccepted {
			t.Errorf("Status = %s, want %s", res.Request.Status, domain.StatusAccepted)
		}
		if len(f.payments.payments) != 1 {
			t.Errorf("payments = %d, want exactly 1", len(f.payments.payments))
		}
	})

	t.Run("non-owner may not decide", func(t *testing.T) {
		f := newPaymentFixture(t)
		request := createRequest(t, f)

		_, err := f.uc.Transition(context.Background(), buyerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.StatusAccepted,
		})
		if !errors.Is(err, e.ErrForbidden) {
			t.Fatalf("err = %v, want %v", err, e.ErrForbidden)
		}
		if len(f.payments.payments) != 0 {
			t.Errorf("payments = %d, want 0", len(f.payments.payments))
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newPaymentFixture(t)
		request := createRequest(t, f)

		_, err := f.uc.Transition(context.Background(), sellerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.RequestStatus("paid"),
		})
		if !errors.Is(err, e.ErrInvalidStatus) {
			t.Fatalf("err = %v, want %v", err, e.ErrInvalidStatus)
		}
	})

	t.Run("terminal transition emits outbox event", func(t *testing.T) {
		f := newPaymentFixture(t)
		request := createRequest(t, f)

		if _, err := f.uc.Transition(context.Background(), sellerPrincipal(), &TransitionReq{
			RequestID: request.ID,
			Status:    domain.StatusRejected,
		}); err != nil {
			t.Fatalf("Transition: %v", err)
		}

		// Первое событие — created при создании заявки.
		if len(f.outbox.events) != 2 {
			t.Fatalf("outbox events = %d, want 2", len(f.outbox.events))
		}
		if f.outbox.events[1].EventType != EventRequestRejected {
			t.Errorf("EventType = %s, want %s", f.outbox.events[1].EventType, EventRequestRejected)
		}
	})
}

func TestListPayments(t *testing.T) {
	f := newPaymentFixture(t)

	for _, price := range []string{"10.50", "20.25"} {
		if _, err := f.payments.Create(context.Background(), &domain.Payment{
			SellerID:   1,
			TotalPrice: decimal.RequireFromString(price),
		}); err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}
	// Платеж другого продавца в сумму не входит.
	if _, err := f.payments.Create(context.Background(), &domain.Payment{
		SellerID:   2,
		TotalPrice: decimal.RequireFromString("99.99"),
	}); err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	ledger, err := f.uc.ListPayments(context.Background(), sellerPrincipal())
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(ledger.Payments) != 2 {
		t.Errorf("payments = %d, want 2", len(ledger.Payments))
	}
	want := decimal.RequireFromString("30.75")
	if !ledger.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", ledger.Total, want)
	}
}

func TestListSellerMethods(t *testing.T) {
	f := newPaymentFixture(t)

	if _, err := f.uc.CreateMethod(context.Background(), sellerPrincipal(), &CreateMethodReq{
		Title: "СБП",
		QR:    FileUpload{Data: []byte("qr"), MimeType: "image/png", Size: 2, Name: "qr.png"},
	}); err != nil {
		t.Fatalf("CreateMethod: %v", err)
	}

	methods, err := f.uc.ListSellerMethods(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListSellerMethods: %v", err)
	}
	if len(methods) != 1 || methods[0].Title != "СБП" {
		t.Errorf("methods = %+v, want one titled СБП", methods)
	}
}

func TestCreateMethod(t *testing.T) {
	t.Run("title required", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.CreateMethod(context.Background(), sellerPrincipal(), &CreateMethodReq{
			QR: FileUpload{Data: []byte("qr")},
		})
		if !errors.Is(err, e.ErrMissingFields) {
			t.Fatalf("err = %v, want %v", err, e.ErrMissingFields)
		}
	})

	t.Run("qr required", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.CreateMethod(context.Background(), sellerPrincipal(), &CreateMethodReq{
			Title: "СБП",
		})
		if !errors.Is(err, e.ErrNoFile) {
			t.Fatalf("err = %v, want %v", err, e.ErrNoFile)
		}
	})
}
