package entities

// Роли пользователей.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleEmployee   = "employee"
)

// Статус оборудования и рабочих центров.
const (
	AssetStatusActive   = "active"
	AssetStatusScrapped = "scrapped"
)

// Приоритет заявки.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Статус заявки на обслуживание.
const (
	RequestStatusNew        = "new"
	RequestStatusInProgress = "in_progress"
	RequestStatusRepaired   = "repaired"
	RequestStatusScrap      = "scrap"
)

// Тип заявки.
const (
	RequestTypeCorrective = "corrective"
	RequestTypePreventive = "preventive"
)

// Типы ссылок журнала активности.
const (
	ReferenceTypeEquipment  = "equipment"
	ReferenceTypeRequest    = "request"
	ReferenceTypeWorkCenter = "work_center"
)
