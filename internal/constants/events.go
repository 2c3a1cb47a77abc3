package constants

// Ключи маршрутизации для событий жизненного цикла объявлений
const (
	RoutingKeyListingCreated = "listing.created"
	RoutingKeyListingUpdated = "listing.updated"
	RoutingKeyListingDeleted = "listing.deleted"
)

// Тип и версия события для валидации по схеме
const (
	ListingLifecycleEventType    = "ListingLifecycleEvent"
	ListingLifecycleEventVersion = "1.0.0"
)
