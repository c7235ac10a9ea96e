package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
)

// Фейки репозиториев и инфраструктуры для тестов usecase-слоя.

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}

type fakeUserRepo struct {
	users   map[int64]*domain.User
	deleted []int64
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	m := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return e.ErrUserNotFound
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*domain.Category
	inUse      map[int64]bool
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	m := make(map[int64]*domain.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return &fakeCategoryRepo{categories: m, inUse: map[int64]bool{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	category.ID = int64(len(f.categories) + 1)
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return e.ErrCategoryNotFound
	}
	if f.inUse[id] {
		return e.ErrCategoryInUse
	}
	delete(f.categories, id)
	return nil
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
	gallery  map[int64][]domain.Image
	nextID   int64

	searchRes   []domain.Product
	searchTotal int64
	lastFilter  *ProductFilter
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{
		products: map[int64]*domain.Product{},
		gallery:  map[int64][]domain.Image{},
	}
	for _, p := range products {
		f.products[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product, galleryKeys []string) (*domain.Product, error) {
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = product
	for i, key := range galleryKeys {
		f.gallery[product.ID] = append(f.gallery[product.ID], domain.Image{ID: int64(i + 1), FileKey: key})
	}
	cp := *product
	return &cp, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := f.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	f.products[product.ID] = product
	cp := *product
	return &cp, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetGallery(_ context.Context, productID int64) ([]domain.Image, error) {
	return f.gallery[productID], nil
}

func (f *fakeProductRepo) ListActive(_ context.Context) ([]domain.Product, error) {
	var res []domain.Product
	for _, p := range f.products {
		if p.IsActive {
			res = append(res, *p)
		}
	}
	return res, nil
}

func (f *fakeProductRepo) ListSimilar(_ context.Context, categoryID, excludeID int64) ([]domain.Product, error) {
	var res []domain.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID && p.ID != excludeID && p.IsActive {
			res = append(res, *p)
		}
	}
	return res, nil
}

func (f *fakeProductRepo) Search(_ context.Context, filter *ProductFilter) ([]domain.Product, int64, error) {
	f.lastFilter = filter
	return f.searchRes, f.searchTotal, nil
}

type fakeRatingRepo struct {
	ratings map[int64]*domain.Rating
	answers []*domain.RatingAnswer
	avg     *float64
	nextID  int64
}

func newFakeRatingRepo(ratings ...*domain.Rating) *fakeRatingRepo {
	f := &fakeRatingRepo{ratings: map[int64]*domain.Rating{}}
	for _, r := range ratings {
		f.ratings[r.ID] = r
		if r.ID > f.nextID {
			f.nextID = r.ID
		}
	}
	return f
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	f.nextID++
	rating.ID = f.nextID
	f.ratings[rating.ID] = rating
	cp := *rating
	return &cp, nil
}

func (f *fakeRatingRepo) GetByID(_ context.Context, id int64) (*domain.Rating, error) {
	r, ok := f.ratings[id]
	if !ok {
		return nil, e.ErrRatingNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRatingRepo) ListForProduct(_ context.Context, productID int64) ([]domain.Rating, error) {
	var res []domain.Rating
	for _, r := range f.ratings {
		if r.ProductID == productID {
			res = append(res, *r)
		}
	}
	return res, nil
}

func (f *fakeRatingRepo) Average(_ context.Context, _ int64) (*float64, error) {
	return f.avg, nil
}

func (f *fakeRatingRepo) CreateAnswer(_ context.Context, answer *domain.RatingAnswer) (*domain.RatingAnswer, error) {
	answer.ID = int64(len(f.answers) + 1)
	f.answers = append(f.answers, answer)
	cp := *answer
	return &cp, nil
}

func (f *fakeRatingRepo) ListAnswers(_ context.Context, ratingIDs []int64) (map[int64][]domain.RatingAnswer, error) {
	res := map[int64][]domain.RatingAnswer{}
	for _, id := range ratingIDs {
		for _, a := range f.answers {
			if a.RatingID == id {
				res[id] = append(res[id], *a)
			}
		}
	}
	return res, nil
}

type fakeMethodRepo struct {
	methods []*domain.PaymentMethod
}

func (f *fakeMethodRepo) Create(_ context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	method.ID = int64(len(f.methods) + 1)
	f.methods = append(f.methods, method)
	cp := *method
	return &cp, nil
}

func (f *fakeMethodRepo) ListForUser(_ context.Context, userID int64) ([]domain.PaymentMethod, error) {
	var res []domain.PaymentMethod
	for _, m := range f.methods {
		if m.OwnerID == userID {
			res = append(res, *m)
		}
	}
	return res, nil
}

type fakeRequestRepo struct {
	requests map[int64]*domain.PaymentRequest
	nextID   int64
}

func newFakeRequestRepo(requests ...*domain.PaymentRequest) *fakeRequestRepo {
	f := &fakeRequestRepo{requests: map[int64]*domain.PaymentRequest{}}
	for _, r := range requests {
		f.requests[r.ID] = r
		if r.ID > f.nextID {
			f.nextID = r.ID
		}
	}
	return f
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.PaymentRequest) (*domain.PaymentRequest, error) {
	f.nextID++
	request.ID = f.nextID
	f.requests[request.ID] = request
	cp := *request
	return &cp, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.PaymentRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, e.ErrPaymentRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) UpdateStatusIfInProcessing(_ context.Context, id int64, status domain.RequestStatus) (*domain.PaymentRequest, bool, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, false, e.ErrPaymentRequestNotFound
	}
	if r.Status != domain.StatusInProcessing {
		cp := *r
		return &cp, false, nil
	}
	r.Status = status
	cp := *r
	return &cp, true, nil
}

func (f *fakeRequestRepo) ListForSeller(_ context.Context, _ int64, _ bool, _ int) ([]PaymentRequestInfo, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	payment.ID = int64(len(f.payments) + 1)
	f.payments = append(f.payments, payment)
	cp := *payment
	return &cp, nil
}

func (f *fakePaymentRepo) ListForSeller(_ context.Context, sellerID int64) ([]domain.Payment, error) {
	var res []domain.Payment
	for _, p := range f.payments {
		if p.SellerID == sellerID {
			res = append(res, *p)
		}
	}
	return res, nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, _ int64) error { return nil }

type fakeFiles struct {
	uploaded []string
	cleaned  []string
	failNext bool
}

func (f *fakeFiles) UploadFile(_ context.Context, req *UploadFileReq) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", e.ErrInternalServerError
	}
	key := fmt.Sprintf("%s/file-%d", req.Prefix, len(f.uploaded)+1)
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeFiles) UploadFiles(ctx context.Context, req *UploadFilesReq) (*UploadFilesRes, error) {
	keys := make([]string, 0, len(req.Files))
	for _, file := range req.Files {
		key, err := f.UploadFile(ctx, NewUploadFileReq(req.Prefix, file))
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return NewUploadFilesRes(keys), nil
}

func (f *fakeFiles) CleanupFiles(keys []string) {
	f.cleaned = append(f.cleaned, keys...)
}

// fakeCache защищен мьютексом: прогрев кэша идет в фоновой горутине.
type fakeCache struct {
	mu      sync.Mutex
	cards   map[int64]ProductCard
	deleted []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{cards: map[int64]ProductCard{}}
}

func (f *fakeCache) GetProducts(_ context.Context, ids []int64) (map[int64]ProductCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := map[int64]ProductCard{}
	for _, id := range ids {
		if card, ok := f.cards[id]; ok {
			res[id] = card
		}
	}
	return res, nil
}

func (f *fakeCache) SetProducts(_ context.Context, products []ProductCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, card := range products {
		f.cards[card.ID] = card
	}
	return nil
}

func (f *fakeCache) DeleteProducts(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range ids {
		delete(f.cards, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

func (f *fakeCache) deletedIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.deleted...)
}
