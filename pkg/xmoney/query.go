package xmoney

import (
	"net/url"
	"strconv"
)

// QueryEncoder is implemented by list parameter structs.
type QueryEncoder interface {
	ToValues() url.Values
}

// ListOptions holds the paging options shared by every list endpoint.
type ListOptions struct {
	Page           int  `json:"page,omitempty"           validate:"omitempty,gte=1"`
	PerPage        int  `json:"perPage,omitempty"        validate:"omitempty,gte=1,lte=100"`
	ReverseSorting bool `json:"reverseSorting,omitempty"`
}

func (o ListOptions) encode(values *valuesBuilder) {
	values.setInt("page", int64(o.Page))
	values.setInt("perPage", int64(o.PerPage))
	values.setBool("reverseSorting", o.ReverseSorting)
}

// OrderListParams filters GET /order.
type OrderListParams struct {
	ListOptions

	ExternalOrderID string `json:"externalOrderId,omitempty"`
	CustomerID      int64  `json:"customerId,omitempty"`
	OrderType       string `json:"orderType,omitempty"       validate:"omitempty,oneof=purchase recurring managed credit"`
	OrderStatus     string `json:"orderStatus,omitempty"`
	Reason          string `json:"reason,omitempty"`
	CreatedAtFrom   string `json:"createdAtFrom,omitempty"`
	CreatedAtTo     string `json:"createdAtTo,omitempty"`
}

// ToValues converts the params to url.Values.
func (p *OrderListParams) ToValues() url.Values {
	values := newValuesBuilder()
	if p == nil {
		return values.build()
	}

	p.encode(values)
	values.setString("externalOrderId", p.ExternalOrderID)
	values.setInt("customerId", p.CustomerID)
	values.setString("orderType", p.OrderType)
	values.setString("orderStatus", p.OrderStatus)
	values.setString("reason", p.Reason)
	values.setString("createdAtFrom", p.CreatedAtFrom)
	values.setString("createdAtTo", p.CreatedAtTo)

	return values.build()
}

// TransactionListParams filters GET /transaction.
type TransactionListParams struct {
	ListOptions

	OrderID           int64    `json:"orderId,omitempty"`
	CustomerID        int64    `json:"customerId,omitempty"`
	Email             string   `json:"email,omitempty"             validate:"omitempty,email"`
	TransactionMethod string   `json:"transactionMethod,omitempty" validate:"omitempty,oneof=card wallet transfer"`
	Currency          string   `json:"currency,omitempty"`
	AmountFrom        float64  `json:"amountFrom,omitempty"`
	AmountTo          float64  `json:"amountTo,omitempty"`
	TransactionType   string   `json:"transactionType,omitempty"`
	TransactionStatus []string `json:"transactionStatus,omitempty"`
	DateType          string   `json:"dateType,omitempty"`
	CreatedAtFrom     string   `json:"createdAtFrom,omitempty"`
	CreatedAtTo       string   `json:"createdAtTo,omitempty"`
	Source            []string `json:"source,omitempty"`
	CardType          string   `json:"cardType,omitempty"`
	CardNumber        string   `json:"cardNumber,omitempty"`
	Country           string   `json:"country,omitempty"`
}

// ToValues converts the params to url.Values.
func (p *TransactionListParams) ToValues() url.Values {
	values := newValuesBuilder()
	if p == nil {
		return values.build()
	}

	p.encode(values)
	values.setInt("orderId", p.OrderID)
	values.setInt("customerId", p.CustomerID)
	values.setString("email", p.Email)
	values.setString("transactionMethod", p.TransactionMethod)
	values.setString("currency", p.Currency)
	values.setFloat("amountFrom", p.AmountFrom)
	values.setFloat("amountTo", p.AmountTo)
	values.setString("transactionType", p.TransactionType)
	values.setStrings("transactionStatus", p.TransactionStatus)
	values.setString("dateType", p.DateType)
	values.setString("createdAtFrom", p.CreatedAtFrom)
	values.setString("createdAtTo", p.CreatedAtTo)
	values.setStrings("source", p.Source)
	values.setString("cardType", p.CardType)
	values.setString("cardNumber", p.CardNumber)
	values.setString("country", p.Country)

	return values.build()
}

// CustomerListParams filters GET /customer.
type CustomerListParams struct {
	ListOptions

	Identifier    string `json:"identifier,omitempty"`
	Email         string `json:"email,omitempty"         validate:"omitempty,email"`
	Country       string `json:"country,omitempty"`
	CreatedAtFrom string `json:"createdAtFrom,omitempty"`
	CreatedAtTo   string `json:"createdAtTo,omitempty"`
}

// ToValues converts the params to url.Values.
func (p *CustomerListParams) ToValues() url.Values {
	values := newValuesBuilder()
	if p == nil {
		return values.build()
	}

	p.encode(values)
	values.setString("identifier", p.Identifier)
	values.setString("email", p.Email)
	values.setString("country", p.Country)
	values.setString("createdAtFrom", p.CreatedAtFrom)
	values.setString("createdAtTo", p.CreatedAtTo)

	return values.build()
}

// CardListParams filters GET /card. CustomerID is required by the API.
type CardListParams struct {
	ListOptions

	CustomerID int64  `json:"customerId"           validate:"required,gt=0"`
	OrderID    int64  `json:"orderId,omitempty"`
	HasToken   string `json:"hasToken,omitempty"   validate:"omitempty,oneof=yes no"`
	CardStatus string `json:"cardStatus,omitempty" validate:"omitempty,oneof=all deleted"`
}

// ToValues converts the params to url.Values.
func (p *CardListParams) ToValues() url.Values {
	values := newValuesBuilder()
	if p == nil {
		return values.build()
	}

	p.encode(values)
	values.setInt("customerId", p.CustomerID)
	values.setInt("orderId", p.OrderID)
	values.setString("hasToken", p.HasToken)
	values.setString("cardStatus", p.CardStatus)

	return values.build()
}

// valuesBuilder skips zero values so unset filters never reach the wire.
type valuesBuilder struct {
	values url.Values
}

func newValuesBuilder() *valuesBuilder {
	return &valuesBuilder{values: url.Values{}}
}

func (b *valuesBuilder) setString(key, value string) {
	if value != "" {
		b.values.Set(key, value)
	}
}

func (b *valuesBuilder) setInt(key string, value int64) {
	if value != 0 {
		b.values.Set(key, strconv.FormatInt(value, 10))
	}
}

func (b *valuesBuilder) setFloat(key string, value float64) {
	if value != 0 {
		b.values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
}

func (b *valuesBuilder) setBool(key string, value bool) {
	if value {
		b.values.Set(key, "true")
	}
}

func (b *valuesBuilder) setStrings(key string, value []string) {
	for _, v := range value {
		b.values.Add(key+"[]", v)
	}
}

func (b *valuesBuilder) build() url.Values {
	return b.values
}
