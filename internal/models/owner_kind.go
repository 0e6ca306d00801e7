package models

// OwnerKind identifies which business entity holds a set of folders,
// documents and photos. The set is closed; storage paths and access checks
// key off it, so values are persisted and must never be renamed.
type OwnerKind string

const (
	OwnerKindClient             OwnerKind = "client"
	OwnerKindProperty           OwnerKind = "property"
	OwnerKindRoom               OwnerKind = "room"
	OwnerKindCondominium        OwnerKind = "condominium"
	OwnerKindManagementContract OwnerKind = "management_contract"
)
