package model

import "time"

// OrderStatusPending is the only status the API ever assigns; orders
// are write-only through this surface.
const OrderStatusPending = "pending"

// Order is a purchase request submitted from a car's detail view.  The
// API accepts the payload as-is, stamps OrderDate and Status, and
// persists it; no stock decrement or availability flip happens here.
type Order struct {
	ID              int64     `json:"id"`
	CarID           int64     `json:"carId"`
	CarName         string    `json:"carName"`
	CarPrice        int64     `json:"carPrice"`
	UserID          int64     `json:"userId"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerMessage string    `json:"customerMessage"`
	OrderDate       time.Time `json:"orderDate"`
	Status          string    `json:"status"`
}

// Statistics is the dashboard summary, computed fresh on every call.
type Statistics struct {
	TotalUsers    int `json:"totalUsers"`
	TotalCars     int `json:"totalCars"`
	AvailableCars int `json:"availableCars"`
	PremiumUsers  int `json:"premiumUsers"`
}
