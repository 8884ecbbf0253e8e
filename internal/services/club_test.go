package services

import (
	"errors"
	"testing"
	"time"

	"nightlife-ticketing-platform/internal/models"
	"nightlife-ticketing-platform/internal/repositories"
)

// MockClubRepository for testing
type MockClubRepository struct {
	clubs  map[int]*models.Club
	nextID int
}

func NewMockClubRepository() *MockClubRepository {
	return &MockClubRepository{clubs: make(map[int]*models.Club), nextID: 1}
}

func (m *MockClubRepository) SetClub(club *models.Club) {
	m.clubs[club.ID] = club
}

func (m *MockClubRepository) Create(req *models.ClubCreateRequest) (*models.Club, error) {
	club := &models.Club{
		ID:        m.nextID,
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	m.clubs[club.ID] = club
	m.nextID++
	return club, nil
}

func (m *MockClubRepository) GetByID(id int) (*models.Club, error) {
	if club, exists := m.clubs[id]; exists {
		return club, nil
	}
	return nil, models.ErrClubNotFound
}

func (m *MockClubRepository) Update(id int, req *models.ClubUpdateRequest) (*models.Club, error) {
	club, exists := m.clubs[id]
	if !exists {
		return nil, models.ErrClubNotFound
	}
	club.Name = req.Name
	club.Address = req.Address
	return club, nil
}

func (m *MockClubRepository) Delete(id int) error {
	if _, exists := m.clubs[id]; !exists {
		return models.ErrClubNotFound
	}
	delete(m.clubs, id)
	return nil
}

func (m *MockClubRepository) List(limit, offset int) ([]*models.Club, int, error) {
	clubs := make([]*models.Club, 0, len(m.clubs))
	for _, club := range m.clubs {
		clubs = append(clubs, club)
	}
	return clubs, len(m.clubs), nil
}

func (m *MockClubRepository) GetByOwner(ownerID int) ([]*models.Club, error) {
	var clubs []*models.Club
	for _, club := range m.clubs {
		if club.OwnerID == ownerID {
			clubs = append(clubs, club)
		}
	}
	return clubs, nil
}

func TestClubService_UpdateClub(t *testing.T) {
	t.Run("owner can update", func(t *testing.T) {
		repo := NewMockClubRepository()
		repo.SetClub(&models.Club{ID: 1, OwnerID: 7, Name: "Old Name"})
		service := NewClubService(repo)

		club, err := service.UpdateClub(1, 7, &models.ClubUpdateRequest{Name: "New Name", Address: "1 Main St"})
		if err != nil {
			t.Fatalf("UpdateClub failed: %v", err)
		}
		if club.Name != "New Name" {
			t.Errorf("Expected updated name, got %q", club.Name)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := NewMockClubRepository()
		repo.SetClub(&models.Club{ID: 1, OwnerID: 7})
		service := NewClubService(repo)

		_, err := service.UpdateClub(1, 8, &models.ClubUpdateRequest{Name: "New Name"})
		if !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown club", func(t *testing.T) {
		service := NewClubService(NewMockClubRepository())

		_, err := service.UpdateClub(99, 7, &models.ClubUpdateRequest{Name: "New Name"})
		if !errors.Is(err, models.ErrClubNotFound) {
			t.Errorf("Expected ErrClubNotFound, got %v", err)
		}
	})
}

func TestClubService_DeleteClub(t *testing.T) {
	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := NewMockClubRepository()
		repo.SetClub(&models.Club{ID: 1, OwnerID: 7})
		service := NewClubService(repo)

		if err := service.DeleteClub(1, 8); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("owner can delete", func(t *testing.T) {
		repo := NewMockClubRepository()
		repo.SetClub(&models.Club{ID: 1, OwnerID: 7})
		service := NewClubService(repo)

		if err := service.DeleteClub(1, 7); err != nil {
			t.Fatalf("DeleteClub failed: %v", err)
		}
		if _, err := repo.GetByID(1); !errors.Is(err, models.ErrClubNotFound) {
			t.Error("Expected club to be deleted")
		}
	})
}

// MockEventRepository for testing
type MockEventRepository struct {
	events      map[int]*models.Event
	lastFilters repositories.EventSearchFilters
	nextID      int
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{events: make(map[int]*models.Event), nextID: 1}
}

func (m *MockEventRepository) Create(req *models.EventCreateRequest) (*models.Event, error) {
	event := &models.Event{
		ID:        m.nextID,
		ClubID:    req.ClubID,
		Name:      req.Name,
		EventDate: req.EventDate,
		Price:     req.Price,
	}
	m.events[event.ID] = event
	m.nextID++
	return event, nil
}

func (m *MockEventRepository) GetByID(id int) (*models.Event, error) {
	if event, exists := m.events[id]; exists {
		return event, nil
	}
	return nil, models.ErrEventNotFound
}

func (m *MockEventRepository) Search(filters repositories.EventSearchFilters) ([]*models.Event, int, error) {
	m.lastFilters = filters
	var events []*models.Event
	for _, event := range m.events {
		if filters.ClubID != 0 && event.ClubID != filters.ClubID {
			continue
		}
		events = append(events, event)
	}
	return events, len(events), nil
}

func (m *MockEventRepository) GetByClub(clubID int) ([]*models.Event, error) {
	var events []*models.Event
	for _, event := range m.events {
		if event.ClubID == clubID {
			events = append(events, event)
		}
	}
	return events, nil
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("club owner can create", func(t *testing.T) {
		clubRepo := NewMockClubRepository()
		clubRepo.SetClub(&models.Club{ID: 1, OwnerID: 7})
		service := NewEventService(NewMockEventRepository(), clubRepo)

		event, err := service.CreateEvent(7, &models.EventCreateRequest{
			ClubID:    1,
			Name:      "Friday Night",
			EventDate: time.Now().Add(48 * time.Hour),
			Price:     5000,
		})
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		if event.ClubID != 1 {
			t.Errorf("Expected club 1, got %d", event.ClubID)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		clubRepo := NewMockClubRepository()
		clubRepo.SetClub(&models.Club{ID: 1, OwnerID: 7})
		service := NewEventService(NewMockEventRepository(), clubRepo)

		_, err := service.CreateEvent(8, &models.EventCreateRequest{
			ClubID:    1,
			Name:      "Friday Night",
			EventDate: time.Now().Add(48 * time.Hour),
			Price:     5000,
		})
		if !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestEventService_UpcomingEvents(t *testing.T) {
	eventRepo := NewMockEventRepository()
	service := NewEventService(eventRepo, NewMockClubRepository())

	_, _, err := service.UpcomingEvents(3, 0, 500)
	if err != nil {
		t.Fatalf("UpcomingEvents failed: %v", err)
	}

	filters := eventRepo.lastFilters
	if filters.ClubID != 3 {
		t.Errorf("Expected club filter 3, got %d", filters.ClubID)
	}
	if filters.DateFrom == nil {
		t.Error("Expected a date-from filter for upcoming events")
	}
	if filters.Limit != 20 || filters.Offset != 0 {
		t.Errorf("Expected defaulted paging, got limit=%d offset=%d", filters.Limit, filters.Offset)
	}
}
