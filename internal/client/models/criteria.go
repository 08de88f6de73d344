package models

import (
	"net/url"
	"strconv"
	"strings"
)

// OrderCriteria filters orders by owner username and an inclusive date range.
type OrderCriteria struct {
	Username  string
	StartDate *Date
	EndDate   *Date
}

func (c OrderCriteria) IsEmpty() bool {
	return isBlank(c.Username) && isZeroDate(c.StartDate) && isZeroDate(c.EndDate)
}

func (c OrderCriteria) Values() url.Values {
	v := url.Values{}
	setString(v, "username", c.Username)
	if !isZeroDate(c.StartDate) {
		v.Set("startDate", c.StartDate.String())
	}
	if !isZeroDate(c.EndDate) {
		v.Set("endDate", c.EndDate.String())
	}
	return v
}

type ProductCriteria struct {
	Name       string
	CategoryID *int64
}

func (c ProductCriteria) IsEmpty() bool {
	return isBlank(c.Name) && c.CategoryID == nil
}

func (c ProductCriteria) Values() url.Values {
	v := url.Values{}
	setString(v, "name", c.Name)
	setID(v, "categoryId", c.CategoryID)
	return v
}

// CategoryCriteria is a free-text match over name and description.
type CategoryCriteria struct {
	SearchTerm string
}

func (c CategoryCriteria) IsEmpty() bool {
	return isBlank(c.SearchTerm)
}

func (c CategoryCriteria) Values() url.Values {
	v := url.Values{}
	setString(v, "searchTerm", c.SearchTerm)
	return v
}

type OrderItemCriteria struct {
	ProductName string
	OrderID     *int64
}

func (c OrderItemCriteria) IsEmpty() bool {
	return isBlank(c.ProductName) && c.OrderID == nil
}

func (c OrderItemCriteria) Values() url.Values {
	v := url.Values{}
	setString(v, "productName", c.ProductName)
	setID(v, "orderId", c.OrderID)
	return v
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isZeroDate(d *Date) bool {
	return d == nil || d.IsZero()
}

func setString(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

func setID(v url.Values, key string, id *int64) {
	if id != nil {
		v.Set(key, strconv.FormatInt(*id, 10))
	}
}
