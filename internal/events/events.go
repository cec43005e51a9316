package events

// Имена доменных событий, публикуемых сервисами на шину.
const (
	RequestCreatedName       = "request.created"
	RequestStatusChangedName = "request.status_changed"
	EquipmentCreatedName     = "equipment.created"
	EquipmentScrappedName    = "equipment.scrapped"
	WorkCenterScrappedName   = "work_center.scrapped"
)

type RequestCreated struct {
	RequestID   uint64
	Subject     string
	PerformedBy uint64
}

func (RequestCreated) Name() string { return RequestCreatedName }

type RequestStatusChanged struct {
	RequestID   uint64
	OldStatus   string
	NewStatus   string
	PerformedBy uint64
}

func (RequestStatusChanged) Name() string { return RequestStatusChangedName }

type EquipmentCreated struct {
	EquipmentID uint64
	PerformedBy uint64
}

func (EquipmentCreated) Name() string { return EquipmentCreatedName }

type EquipmentScrapped struct {
	EquipmentID uint64
	PerformedBy uint64
}

func (EquipmentScrapped) Name() string { return EquipmentScrappedName }

type WorkCenterScrapped struct {
	WorkCenterID uint64
	PerformedBy  uint64
}

func (WorkCenterScrapped) Name() string { return WorkCenterScrappedName }
