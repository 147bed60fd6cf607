package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/minishop/internal/models"
)

// AddToCart inserts the item or, when the (user_id, product_id) pair already
// exists, adds item.Quantity to the stored quantity in the same statement.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	err := r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).
		Create(item).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrUnknownReference
	}
	return err
}

func (r *GormRepo) ListCart(ctx context.Context, userID uint) ([]models.CartLine, error) {
	lines := make([]models.CartLine, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id AS cart_id,
			cart_items.quantity AS quantity,
			products.id AS product_id,
			products.name AS name,
			products.price AS price,
			products.description AS description,
			products.category AS category,
			products.image AS image`).
		Joins("INNER JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity overwrites the quantity of a row owned by userID and reports
// how many rows matched.
func (r *GormRepo) UpdateQuantity(ctx context.Context, cartID, userID uint, quantity int) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", cartID, userID).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, cartID, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// Checkout deletes the given cart rows owned by userID in one transaction.
func (r *GormRepo) Checkout(ctx context.Context, userID uint, cartIDs []uint) (int64, error) {
	var removed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ? AND user_id = ?", cartIDs, userID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
