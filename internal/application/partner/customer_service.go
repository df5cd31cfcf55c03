package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer directory operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// ManageCustomer inserts the customer if no row with the same email exists.
// When a row already matches, no write occurs and the existing row is
// returned untouched; incoming fields are not merged. A concurrent insert
// of the same email degrades to the "already exists" path via the unique
// index rather than producing a second row.
func (s *CustomerService) ManageCustomer(ctx context.Context, req ManageCustomerRequest) (*ManageCustomerResult, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		response := ToCustomerResponse(existing)
		return &ManageCustomerResult{Customer: response, Created: false}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up customer by email: %w", err)
	}

	customer, err := partner.NewCustomer(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := customer.SetAddress(req.StreetAddress, req.Suburb, req.City, req.Pin); err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := customer.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the race to another writer with the same email.
			winner, findErr := s.customerRepo.FindByEmail(ctx, req.Email)
			if findErr != nil {
				return nil, fmt.Errorf("customer exists but could not be loaded: %w", findErr)
			}
			response := ToCustomerResponse(winner)
			return &ManageCustomerResult{Customer: response, Created: false}, nil
		}
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("email", customer.Email),
		zap.String("name", customer.Name),
	)
	customer.ClearDomainEvents()

	response := ToCustomerResponse(customer)
	return &ManageCustomerResult{Customer: response, Created: true}, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByEmail retrieves a customer by email
func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with pagination
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}
