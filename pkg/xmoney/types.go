package xmoney

import (
	"encoding/json"
)

// ErrorType is the category of an ErrorDetail.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "Validation"
	ErrorTypeException  ErrorType = "Exception"
)

// ErrorDetail is one entry of the envelope's error array.
type ErrorDetail struct {
	Code    int       `json:"code,omitempty"  yaml:"code,omitempty"`
	Message string    `json:"message"         yaml:"message"`
	Type    ErrorType `json:"type,omitempty"  yaml:"type,omitempty"`
	Field   string    `json:"field,omitempty" yaml:"field,omitempty"`
}

// Pagination represents pagination information.
type Pagination struct {
	CurrentPageNumber int `json:"currentPageNumber" yaml:"currentPageNumber"`
	TotalItemCount    int `json:"totalItemCount"    yaml:"totalItemCount"`
	ItemCountPerPage  int `json:"itemCountPerPage"  yaml:"itemCountPerPage"`
	CurrentItemCount  int `json:"currentItemCount"  yaml:"currentItemCount"`
	PageCount         int `json:"pageCount"         yaml:"pageCount"`
}

// IsLastPage reports whether no page follows the current one.
func (p Pagination) IsLastPage() bool {
	return p.CurrentPageNumber >= p.PageCount
}

// Envelope is the outer object of every API response. A Code of 400 or
// above signals failure even when the HTTP status is 200.
type Envelope[T any] struct {
	Code       int           `json:"code"                 yaml:"code"`
	Message    string        `json:"message"              yaml:"message"`
	Data       T             `json:"data,omitempty"       yaml:"data,omitempty"`
	Pagination *Pagination   `json:"pagination,omitempty" yaml:"pagination,omitempty"`
	Error      []ErrorDetail `json:"error,omitempty"      yaml:"error,omitempty"`
}

// Failed reports whether the envelope signals a logical failure.
func (e *Envelope[T]) Failed() bool {
	return e.Code >= 400
}

// ListResponse represents a paginated list response.
type ListResponse[T any] struct {
	Data       []T        `json:"data"       yaml:"data"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// OrderType is the kind of order.
type OrderType string

const (
	OrderTypePurchase  OrderType = "purchase"
	OrderTypeRecurring OrderType = "recurring"
	OrderTypeManaged   OrderType = "managed"
	OrderTypeCredit    OrderType = "credit"
)

// Order represents an order resource.
type Order struct {
	ID              int64     `json:"id"                        yaml:"id"`
	SiteID          int64     `json:"siteId"                    yaml:"siteId"`
	CustomerID      int64     `json:"customerId,omitempty"      yaml:"customerId,omitempty"`
	ExternalOrderID string    `json:"externalOrderId,omitempty" yaml:"externalOrderId,omitempty"`
	OrderType       OrderType `json:"orderType"                 yaml:"orderType"`
	OrderStatus     string    `json:"orderStatus,omitempty"     yaml:"orderStatus,omitempty"`
	Amount          float64   `json:"amount"                    yaml:"amount"`
	Currency        string    `json:"currency"                  yaml:"currency"`
	Description     string    `json:"description,omitempty"     yaml:"description,omitempty"`
	Status          string    `json:"status,omitempty"          yaml:"status,omitempty"`
	TransactionID   int64     `json:"transactionId,omitempty"   yaml:"transactionId,omitempty"`
	CardID          int64     `json:"cardId,omitempty"          yaml:"cardId,omitempty"`
	IntervalType    string    `json:"intervalType,omitempty"    yaml:"intervalType,omitempty"`
	IntervalValue   int       `json:"intervalValue,omitempty"   yaml:"intervalValue,omitempty"`
	NextDueDate     string    `json:"nextDueDate,omitempty"     yaml:"nextDueDate,omitempty"`
	Created         string    `json:"created,omitempty"         yaml:"created,omitempty"`
	Updated         string    `json:"updated,omitempty"         yaml:"updated,omitempty"`
}

// OrderCreateRequest is the body of POST /order and the hosted checkout payload.
type OrderCreateRequest struct {
	Amount              float64   `json:"amount"                        validate:"gt=0"`
	Currency            string    `json:"currency"                      validate:"required,len=3"`
	OrderType           OrderType `json:"orderType"                     validate:"required,oneof=purchase recurring managed credit"`
	CustomerID          int64     `json:"customerId"                    validate:"required,gt=0"`
	SiteID              int64     `json:"siteId,omitempty"`
	Description         string    `json:"description,omitempty"`
	ExternalOrderID     string    `json:"externalOrderId,omitempty"`
	IntervalType        string    `json:"intervalType,omitempty"        validate:"omitempty,oneof=day month"`
	IntervalValue       int       `json:"intervalValue,omitempty"       validate:"omitempty,gt=0"`
	RetryPayment        string    `json:"retryPayment,omitempty"`
	TrialAmount         float64   `json:"trialAmount,omitempty"         validate:"omitempty,gte=0"`
	FirstBillDate       string    `json:"firstBillDate,omitempty"`
	BackURL             string    `json:"backUrl,omitempty"             validate:"omitempty,url"`
	TransactionMethod   string    `json:"transactionMethod,omitempty"   validate:"omitempty,oneof=card wallet"`
	CardTransactionMode string    `json:"cardTransactionMode,omitempty" validate:"omitempty,oneof=auth authAndCapture credit"`
	CardID              int64     `json:"cardId,omitempty"`
	CardNumber          string    `json:"cardNumber,omitempty"`
	CardExpiryDate      string    `json:"cardExpiryDate,omitempty"`
	CardCvv             string    `json:"cardCvv,omitempty"`
	CardHolderName      string    `json:"cardHolderName,omitempty"`
	CardHolderCountry   string    `json:"cardHolderCountry,omitempty"`
	CardHolderState     string    `json:"cardHolderState,omitempty"`
	SaveCard            *bool     `json:"saveCard,omitempty"`
	InvoiceEmail        string    `json:"invoiceEmail,omitempty"        validate:"omitempty,email"`
	IP                  string    `json:"ip,omitempty"                  validate:"omitempty,ip"`
	ThreeDSecureData    string    `json:"threeDSecureData,omitempty"`
	ExternalCustomData  string    `json:"externalCustomData,omitempty"`
	Level3Data          string    `json:"level3Data,omitempty"`
}

// OrderRebillRequest is the body of POST /order-rebill/{id}.
type OrderRebillRequest struct {
	CustomerID        int64   `json:"customerId"                  validate:"required,gt=0"`
	Amount            float64 `json:"amount"                      validate:"gt=0"`
	TransactionOption string  `json:"transactionOption,omitempty"`
}

// Transaction represents a transaction resource.
type Transaction struct {
	ID                int64         `json:"id"                          yaml:"id"`
	SiteID            int64         `json:"siteId,omitempty"            yaml:"siteId,omitempty"`
	OrderID           int64         `json:"orderId,omitempty"           yaml:"orderId,omitempty"`
	CustomerID        int64         `json:"customerId,omitempty"        yaml:"customerId,omitempty"`
	CardID            int64         `json:"cardId,omitempty"            yaml:"cardId,omitempty"`
	TransactionType   string        `json:"transactionType,omitempty"   yaml:"transactionType,omitempty"`
	TransactionMethod string        `json:"transactionMethod,omitempty" yaml:"transactionMethod,omitempty"`
	TransactionStatus string        `json:"transactionStatus,omitempty" yaml:"transactionStatus,omitempty"`
	Amount            float64       `json:"amount,omitempty"            yaml:"amount,omitempty"`
	Currency          string        `json:"currency,omitempty"          yaml:"currency,omitempty"`
	AmountInEUR       float64       `json:"amountInEur,omitempty"       yaml:"amountInEur,omitempty"`
	Description       string        `json:"description,omitempty"       yaml:"description,omitempty"`
	IP                string        `json:"ip,omitempty"                yaml:"ip,omitempty"`
	CreatedAt         string        `json:"createdAt,omitempty"         yaml:"createdAt,omitempty"`
	Errors            []ErrorDetail `json:"errors,omitempty"            yaml:"errors,omitempty"`
}

// RefundReason enumerates the accepted refund reasons.
type RefundReason string

const (
	RefundReasonFraudConfirm          RefundReason = "fraud-confirm"
	RefundReasonHighlySuspicious      RefundReason = "highly-suspicious"
	RefundReasonDuplicatedTransaction RefundReason = "duplicated-transaction"
	RefundReasonCustomerDemand        RefundReason = "customer-demand"
	RefundReasonTestTransaction       RefundReason = "test-transaction"
	RefundReasonCardExpired           RefundReason = "card-expired"
)

// TransactionCaptureRequest is the body of PUT /transaction/{id}.
type TransactionCaptureRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// TransactionRefundRequest is the body of DELETE /transaction/{id}.
type TransactionRefundRequest struct {
	Reason  RefundReason `json:"reason,omitempty"  validate:"omitempty,oneof=fraud-confirm highly-suspicious duplicated-transaction customer-demand test-transaction card-expired"`
	Message string       `json:"message,omitempty"`
	Amount  float64      `json:"amount,omitempty"  validate:"omitempty,gt=0"`
}

// Customer represents a customer resource.
type Customer struct {
	ID         int64  `json:"id"                  yaml:"id"`
	SiteID     int64  `json:"siteId,omitempty"    yaml:"siteId,omitempty"`
	Identifier string `json:"identifier"          yaml:"identifier"`
	Email      string `json:"email"               yaml:"email"`
	FirstName  string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	Country    string `json:"country,omitempty"   yaml:"country,omitempty"`
	State      string `json:"state,omitempty"     yaml:"state,omitempty"`
	City       string `json:"city,omitempty"      yaml:"city,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"   yaml:"zipCode,omitempty"`
	Address    string `json:"address,omitempty"   yaml:"address,omitempty"`
	Phone      string `json:"phone,omitempty"     yaml:"phone,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// CustomerCreateRequest is the body of POST /customer.
type CustomerCreateRequest struct {
	Identifier string `json:"identifier"          validate:"required"`
	Email      string `json:"email"               validate:"required,email"`
	SiteID     int64  `json:"siteId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Country    string `json:"country,omitempty"   validate:"omitempty,len=2"`
	State      string `json:"state,omitempty"`
	City       string `json:"city,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// CustomerUpdateRequest is the body of PUT /customer/{id}.
type CustomerUpdateRequest struct {
	Identifier string `json:"identifier,omitempty"`
	Email      string `json:"email,omitempty"      validate:"omitempty,email"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"    validate:"omitempty,len=2"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// BinInfo describes the issuer of a card.
type BinInfo struct {
	Bin         string `json:"bin"                   yaml:"bin"`
	Brand       string `json:"brand,omitempty"       yaml:"brand,omitempty"`
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	Level       string `json:"level,omitempty"       yaml:"level,omitempty"`
	CountryCode string `json:"countryCode,omitempty" yaml:"countryCode,omitempty"`
	Bank        string `json:"bank,omitempty"        yaml:"bank,omitempty"`
}

// Card represents a stored card.
type Card struct {
	ID                int64    `json:"id"                          yaml:"id"`
	CustomerID        int64    `json:"customerId"                  yaml:"customerId"`
	Type              string   `json:"type,omitempty"              yaml:"type,omitempty"`
	CardNumber        string   `json:"cardNumber,omitempty"        yaml:"cardNumber,omitempty"`
	ExpiryMonth       string   `json:"expiryMonth,omitempty"       yaml:"expiryMonth,omitempty"`
	ExpiryYear        string   `json:"expiryYear,omitempty"        yaml:"expiryYear,omitempty"`
	NameOnCard        string   `json:"nameOnCard,omitempty"        yaml:"nameOnCard,omitempty"`
	CardHolderCountry string   `json:"cardHolderCountry,omitempty" yaml:"cardHolderCountry,omitempty"`
	CardHolderState   string   `json:"cardHolderState,omitempty"   yaml:"cardHolderState,omitempty"`
	CardProvider      string   `json:"cardProvider,omitempty"      yaml:"cardProvider,omitempty"`
	HasToken          bool     `json:"hasToken,omitempty"          yaml:"hasToken,omitempty"`
	CardStatus        string   `json:"cardStatus,omitempty"        yaml:"cardStatus,omitempty"`
	BinInfo           *BinInfo `json:"binInfo,omitempty"           yaml:"binInfo,omitempty"`
}

// TransactionStatus is the status reported by a webhook notification.
type TransactionStatus string

const (
	TransactionStatusStart          TransactionStatus = "start"
	TransactionStatusInProgress     TransactionStatus = "in-progress"
	TransactionStatus3DPending      TransactionStatus = "3d-pending"
	TransactionStatusCompleteOK     TransactionStatus = "complete-ok"
	TransactionStatusCompleteFailed TransactionStatus = "complete-failed"
	TransactionStatusRefundOK       TransactionStatus = "refund-ok"
	TransactionStatusVoidOK         TransactionStatus = "void-ok"
)

// WebhookEvent is the decrypted body of a webhook notification.
type WebhookEvent struct {
	TransactionStatus TransactionStatus `json:"transactionStatus"    yaml:"transactionStatus"`
	OrderID           int64             `json:"orderId"              yaml:"orderId"`
	ExternalOrderID   string            `json:"externalOrderId"      yaml:"externalOrderId"`
	TransactionID     int64             `json:"transactionId"        yaml:"transactionId"`
	TransactionMethod string            `json:"transactionMethod"    yaml:"transactionMethod"`
	CustomerID        int64             `json:"customerId"           yaml:"customerId"`
	Identifier        string            `json:"identifier"           yaml:"identifier"`
	Amount            float64           `json:"amount"               yaml:"amount"`
	Currency          string            `json:"currency"             yaml:"currency"`
	CustomData        json.RawMessage   `json:"customData,omitempty" yaml:"-"`
	Timestamp         int64             `json:"timestamp"            yaml:"timestamp"`
	CardID            *int64            `json:"cardId,omitempty"     yaml:"cardId,omitempty"`
	Errors            []ErrorDetail     `json:"errors,omitempty"     yaml:"errors,omitempty"`
}

// HostedPayload is the signed hosted checkout submission.
type HostedPayload struct {
	Action      string `json:"action"      yaml:"action"`
	JSONRequest string `json:"jsonRequest" yaml:"jsonRequest"`
	Checksum    string `json:"checksum"    yaml:"checksum"`
}
