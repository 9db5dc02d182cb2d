package ingest

// Topic identifies the kind of webhook event delivered by the storefront
// platform. Create and updated variants of one entity share upsert semantics,
// so both route to the same handler.
type Topic string

const (
	TopicOrdersCreate    Topic = "orders/create"
	TopicOrdersUpdated   Topic = "orders/updated"
	TopicCustomersCreate Topic = "customers/create"
	TopicCustomersUpdate Topic = "customers/update"
	TopicProductsCreate  Topic = "products/create"
	TopicProductsUpdate  Topic = "products/update"
)

// EntityKind is the canonical record type a topic maps to
type EntityKind string

const (
	EntityOrder    EntityKind = "order"
	EntityCustomer EntityKind = "customer"
	EntityProduct  EntityKind = "product"
)

var topicEntities = map[Topic]EntityKind{
	TopicOrdersCreate:    EntityOrder,
	TopicOrdersUpdated:   EntityOrder,
	TopicCustomersCreate: EntityCustomer,
	TopicCustomersUpdate: EntityCustomer,
	TopicProductsCreate:  EntityProduct,
	TopicProductsUpdate:  EntityProduct,
}

// ParseTopic maps a raw topic header value to a recognized Topic.
// Unrecognized values return ok=false; the platform adds new event kinds
// over time and they must be ignorable, not errors.
func ParseTopic(raw string) (Topic, bool) {
	topic := Topic(raw)
	_, ok := topicEntities[topic]
	return topic, ok
}

// Entity returns the canonical record type this topic mutates
func (t Topic) Entity() (EntityKind, bool) {
	kind, ok := topicEntities[t]
	return kind, ok
}

// String returns the wire form of the topic
func (t Topic) String() string {
	return string(t)
}
