package models

import "time"

// Agreement statuses shown in the customer directory.
const (
	AgreementActive   = "Active"
	AgreementInactive = "Inactive"
)

// Agreement describes the service agreement attached to a customer account.
type Agreement struct {
	Name   string    `bson:"name" json:"agreementName"`
	Number string    `bson:"number" json:"agreementNumber"`
	Start  time.Time `bson:"start" json:"agreementStart"`
	End    time.Time `bson:"end" json:"agreementEnd"`
	Status string    `bson:"status" json:"status"`
}

// HistoryEvent is one entry in a customer's history timeline.
// Type is "success" or "info".
type HistoryEvent struct {
	Date        time.Time `bson:"date" json:"date"`
	Action      string    `bson:"action" json:"action"`
	Description string    `bson:"description" json:"description"`
	Type        string    `bson:"type" json:"type"`
}

// Customer is the row shape of the customer directory: the public profile
// plus the agreement, if any.
type Customer struct {
	PublicProfile
	Agreement *Agreement `json:"agreement,omitempty"`
}

// AsCustomer builds the directory view of the user.
func (u *User) AsCustomer() *Customer {
	return &Customer{
		PublicProfile: *u.Public(),
		Agreement:     u.Agreement,
	}
}
