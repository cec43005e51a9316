package listeners

import (
	"context"
	"fmt"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"

	"go.uber.org/zap"
)

// ActivityLogListener переводит доменные события в записи журнала активности.
type ActivityLogListener struct {
	logs   repositories.ActivityLogRepositoryInterface
	logger *zap.Logger
}

func NewActivityLogListener(logs repositories.ActivityLogRepositoryInterface, logger *zap.Logger) *ActivityLogListener {
	return &ActivityLogListener{logs: logs, logger: logger}
}

// Register подписывает слушателя на все журналируемые события.
func (l *ActivityLogListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreatedName, l.handleRequestCreated)
	bus.Subscribe(events.RequestStatusChangedName, l.handleRequestStatusChanged)
	bus.Subscribe(events.EquipmentCreatedName, l.handleEquipmentCreated)
	bus.Subscribe(events.EquipmentScrappedName, l.handleEquipmentScrapped)
	bus.Subscribe(events.WorkCenterScrappedName, l.handleWorkCenterScrapped)
}

func (l *ActivityLogListener) write(ctx context.Context, log entities.ActivityLog) error {
	if _, err := l.logs.CreateActivityLog(ctx, log); err != nil {
		return fmt.Errorf("ошибка записи в журнал активности: %w", err)
	}
	return nil
}

func (l *ActivityLogListener) handleRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestCreated)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}
	return l.write(ctx, entities.ActivityLog{
		ReferenceType: entities.ReferenceTypeRequest,
		ReferenceID:   e.RequestID,
		Action:        "created",
		PerformedBy:   e.PerformedBy,
	})
}

func (l *ActivityLogListener) handleRequestStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestStatusChanged)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}
	return l.write(ctx, entities.ActivityLog{
		ReferenceType: entities.ReferenceTypeRequest,
		ReferenceID:   e.RequestID,
		Action:        fmt.Sprintf("status_changed:%s->%s", e.OldStatus, e.NewStatus),
		PerformedBy:   e.PerformedBy,
	})
}

func (l *ActivityLogListener) handleEquipmentCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EquipmentCreated)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}
	return l.write(ctx, entities.ActivityLog{
		ReferenceType: entities.ReferenceTypeEquipment,
		ReferenceID:   e.EquipmentID,
		Action:        "created",
		PerformedBy:   e.PerformedBy,
	})
}

func (l *ActivityLogListener) handleEquipmentScrapped(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EquipmentScrapped)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}
	return l.write(ctx, entities.ActivityLog{
		ReferenceType: entities.ReferenceTypeEquipment,
		ReferenceID:   e.EquipmentID,
		Action:        "scrapped",
		PerformedBy:   e.PerformedBy,
	})
}

func (l *ActivityLogListener) handleWorkCenterScrapped(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkCenterScrapped)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}
	return l.write(ctx, entities.ActivityLog{
		ReferenceType: entities.ReferenceTypeWorkCenter,
		ReferenceID:   e.WorkCenterID,
		Action:        "scrapped",
		PerformedBy:   e.PerformedBy,
	})
}
