package entities

type Team struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Specialization *string `json:"specialization"` // IT, Electrical, Mechanical
	Description    *string `json:"description"`

	// MemberIDs наполняется из join-таблицы team_members; порядок не гарантирован.
	MemberIDs []uint64 `json:"member_ids"`
}
