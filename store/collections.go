package store

import "github.com/junaidrashid-git/fishparque-api/models"

// Users returns all registered users keyed by email.
func (s *Store) Users() map[string]models.User {
	users := map[string]models.User{}
	s.Read(Users, &users)
	if users == nil {
		users = map[string]models.User{}
	}
	return users
}

// Orders returns every order in placement order.
func (s *Store) Orders() []models.Order {
	orders := []models.Order{}
	s.Read(Orders, &orders)
	if orders == nil {
		orders = []models.Order{}
	}
	return orders
}

// Feedbacks returns every feedback record in submission order.
func (s *Store) Feedbacks() []models.Feedback {
	feedbacks := []models.Feedback{}
	s.Read(Feedbacks, &feedbacks)
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	return feedbacks
}

// UpdateUsers applies fn to the users map under the collection lock.
func (s *Store) UpdateUsers(fn func(users map[string]models.User) error) error {
	users := map[string]models.User{}
	return s.Update(Users, &users, func() error {
		if users == nil {
			users = map[string]models.User{}
		}
		return fn(users)
	})
}

// UpdateOrders applies fn to the order list under the collection lock. fn returns
// the list to persist.
func (s *Store) UpdateOrders(fn func(orders []models.Order) ([]models.Order, error)) error {
	orders := []models.Order{}
	return s.Update(Orders, &orders, func() error {
		updated, err := fn(orders)
		if err != nil {
			return err
		}
		orders = updated
		return nil
	})
}

// UpdateFeedbacks applies fn to the feedback list under the collection lock. fn
// returns the list to persist.
func (s *Store) UpdateFeedbacks(fn func(feedbacks []models.Feedback) ([]models.Feedback, error)) error {
	feedbacks := []models.Feedback{}
	return s.Update(Feedbacks, &feedbacks, func() error {
		updated, err := fn(feedbacks)
		if err != nil {
			return err
		}
		feedbacks = updated
		return nil
	})
}
