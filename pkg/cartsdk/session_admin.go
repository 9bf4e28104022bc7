package cartsdk

import (
	"context"
	"net/url"
)

// Admin operations - require a user with is_admin set. Others get 403.

// ============================================================================
// Users
// ============================================================================

// ListUsers returns every registered user.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var list UserList
	if err := s.Get(ctx, "/admin/users", &list); err != nil {
		return nil, err
	}
	return list.Users, nil
}

// ============================================================================
// Orders
// ============================================================================

// ListAllOrders returns the orders of every user.
func (s *Session) ListAllOrders(ctx context.Context) ([]Order, error) {
	var list OrderList
	if err := s.Get(ctx, "/admin/orders", &list); err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// UpdateOrderStatus moves an order to status.
func (s *Session) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) (*Order, error) {
	req := UpdateOrderStatusRequest{Status: status}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var order Order
	if err := s.Put(ctx, "/admin/orders/"+url.PathEscape(orderID)+"/status", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ============================================================================
// Analytics
// ============================================================================

// GetAnalytics returns sales totals and the best-selling events.
func (s *Session) GetAnalytics(ctx context.Context) (*Analytics, error) {
	var a Analytics
	if err := s.Get(ctx, "/admin/analytics", &a); err != nil {
		return nil, err
	}
	return &a, nil
}
