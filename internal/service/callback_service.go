package service

import (
	"context"
	"time"

	"writinghub-be/internal/dto"
	"writinghub-be/internal/entity"
	"writinghub-be/internal/pkg/logger"
	"writinghub-be/internal/pkg/sanitize"
	"writinghub-be/internal/repository/specification"
	"writinghub-be/internal/repository/unitofwork"
	"writinghub-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICallbackService interface {
	Create(ctx context.Context, req *dto.CreateCallbackRequest) (*dto.CallbackDTO, error)
	GetAll(ctx context.Context) ([]*dto.CallbackDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.CallbackDTO, error)
}

type callbackService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewCallbackService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) ICallbackService {
	return &callbackService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *callbackService) Create(ctx context.Context, req *dto.CreateCallbackRequest) (*dto.CallbackDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	callback := &entity.Callback{
		Id:            uuid.New(),
		Name:          sanitize.Text(req.Name),
		Phone:         sanitize.Text(req.Phone),
		PreferredTime: sanitize.Text(req.PreferredTime),
		Status:        entity.CallbackStatusPending,
		CreatedAt:     time.Now(),
	}
	if callback.Name == "" || callback.Phone == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Name and phone are required")
	}

	if err := uow.CallbackRepository().Create(ctx, callback); err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, events.NewCallbackRequested(callback.Id.String(), callback.Name, callback.Phone)); err != nil {
		s.logger.Warn("CallbackService", "Failed to publish callback event", map[string]interface{}{
			"callback_id": callback.Id.String(),
			"error":       err.Error(),
		})
	}

	return callbackToDTO(callback), nil
}

func (s *callbackService) GetAll(ctx context.Context) ([]*dto.CallbackDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	callbacks, err := uow.CallbackRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CallbackDTO, len(callbacks))
	for i, c := range callbacks {
		result[i] = callbackToDTO(c)
	}
	return result, nil
}

func (s *callbackService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.CallbackDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	callbacks := uow.CallbackRepository()

	callback, err := callbacks.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if callback == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Callback not found")
	}

	if err := callbacks.UpdateFields(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	callback.Status = status

	return callbackToDTO(callback), nil
}

func callbackToDTO(c *entity.Callback) *dto.CallbackDTO {
	if c == nil {
		return nil
	}
	return &dto.CallbackDTO{
		Id:            c.Id,
		Name:          c.Name,
		Phone:         c.Phone,
		PreferredTime: c.PreferredTime,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}
