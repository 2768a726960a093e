package handlers_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cardoctor/cardoctor-api/internal/domain"
	"github.com/cardoctor/cardoctor-api/internal/http/handlers"
	"github.com/cardoctor/cardoctor-api/internal/http/middleware"
	"github.com/cardoctor/cardoctor-api/internal/platform/auth"
	"github.com/cardoctor/cardoctor-api/pkg/config"
)

const testSecret = "test-secret"

// ---------- Mocks ----------

type mockBookingsRepo struct {
	mu       sync.Mutex
	nextID   int64
	order    []int64
	bookings map[int64]domain.Booking
}

func newMockBookingsRepo() *mockBookingsRepo {
	return &mockBookingsRepo{
		nextID:   1,
		bookings: make(map[int64]domain.Booking),
	}
}

func (m *mockBookingsRepo) Create(_ context.Context, req *domain.BookingCreateReq) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := domain.Booking{
		ID:           m.nextID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		ServiceID:    req.ServiceID,
		ServiceTitle: req.ServiceTitle,
		Price:        req.Price,
		Date:         req.Date,
		Img:          req.Img,
		Status:       domain.BookingPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.nextID++
	m.bookings[b.ID] = b
	m.order = append(m.order, b.ID)
	return &b, nil
}

func (m *mockBookingsRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *mockBookingsRepo) ListByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Booking
	for _, id := range m.order {
		if b, ok := m.bookings[id]; ok && b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingsRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, upsert bool) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		if !upsert {
			return nil, nil
		}
		b = domain.Booking{ID: id, Status: status}
		m.bookings[id] = b
		m.order = append(m.order, id)
		return &b, nil
	}

	b.Status = status
	b.UpdatedAt = time.Now()
	m.bookings[id] = b
	return &b, nil
}

func (m *mockBookingsRepo) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookings[id]; !ok {
		return false, nil
	}
	delete(m.bookings, id)
	return true, nil
}

type mockServicesRepo struct {
	services []domain.ServiceOffering
}

func (m *mockServicesRepo) List(context.Context) ([]domain.ServiceOffering, error) {
	out := make([]domain.ServiceOffering, len(m.services))
	copy(out, m.services)
	return out, nil
}

func (m *mockServicesRepo) GetByID(_ context.Context, id int64) (*domain.ServiceOffering, error) {
	for _, s := range m.services {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *mockServicesRepo) GetSummaryByID(ctx context.Context, id int64) (*domain.ServiceSummary, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	summary := s.Summary()
	return &summary, nil
}

type capturePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *capturePublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

// ---------- Helpers ----------

func newTestRouter(bookings *mockBookingsRepo, services *mockServicesRepo, pub *capturePublisher) http.Handler {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: testSecret,
			TokenTTL:  time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
	if bookings == nil {
		bookings = newMockBookingsRepo()
	}
	if services == nil {
		services = &mockServicesRepo{}
	}
	if pub == nil {
		pub = &capturePublisher{}
	}
	return handlers.NewRouter(&handlers.RouterDeps{
		Config:    cfg,
		Bookings:  bookings,
		Services:  services,
		Publisher: pub,
	})
}

func sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, err := auth.Issue(testSecret, map[string]any{"email": email}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}
