package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

type orderTxRepository struct {
	tx pgx.Tx
}

type orderLogRepository struct {
	storage *Storage
}

// queryer covers both the pool and an open transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const orderColumns = `id, user_id, order_status, created_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	var saved *model.Order
	err := r.storage.withinTx(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, order_status) VALUES ($1, $2) RETURNING id, created_at`
		var (
			id        int64
			createdAt time.Time
		)
		if err := tx.QueryRow(ctx, insertOrder, order.UserID, order.Status).Scan(&id, &createdAt); err != nil {
			return translateErr(err)
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3)`
		lines := order.Lines()
		for _, line := range lines {
			if _, err := tx.Exec(ctx, insertItem, id, line.ProductID, line.Quantity); err != nil {
				return translateErr(err)
			}
		}

		saved = model.RestoreOrder(id, order.UserID, order.Status, createdAt, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *orderRepository) GetDetail(ctx context.Context, orderID int64) (*model.Order, error) {
	return loadOrder(ctx, r.storage.pool, orderID, false)
}

func (r *orderRepository) Search(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)
	next := func(arg any) string {
		args = append(args, arg)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.UserID != nil {
		conds = append(conds, "user_id = "+next(*filter.UserID))
	}
	if filter.Status != nil {
		conds = append(conds, "order_status = "+next(*filter.Status))
	}
	if filter.From != nil {
		conds = append(conds, "created_at >= "+next(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "created_at <= "+next(*filter.To))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	type orderRow struct {
		id        int64
		userID    int64
		status    model.OrderStatus
		createdAt time.Time
	}
	var (
		heads    []orderRow
		orderIDs []int64
	)
	for rows.Next() {
		var row orderRow
		if err := rows.Scan(&row.id, &row.userID, &row.status, &row.createdAt); err != nil {
			return nil, err
		}
		heads = append(heads, row)
		orderIDs = append(orderIDs, row.id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(heads) == 0 {
		return nil, nil
	}

	linesByOrder, err := loadLinesBatch(ctx, r.storage.pool, orderIDs)
	if err != nil {
		return nil, err
	}

	result := make([]model.Order, 0, len(heads))
	for _, head := range heads {
		order := model.RestoreOrder(head.id, head.userID, head.status, head.createdAt, linesByOrder[head.id])
		result = append(result, *order)
	}
	return result, nil
}

func (r *orderTxRepository) GetForUpdate(ctx context.Context, orderID int64) (*model.Order, error) {
	return loadOrder(ctx, r.tx, orderID, true)
}

func (r *orderTxRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET order_status = $1 WHERE id = $2`
	if _, err := r.tx.Exec(ctx, query, status, orderID); err != nil {
		return translateErr(err)
	}
	return nil
}

type rowQueryer interface {
	queryer
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// loadOrder reads one order with its lines. With forUpdate the order row is
// locked, which serializes concurrent status transitions on the same order.
func loadOrder(ctx context.Context, q rowQueryer, orderID int64, forUpdate bool) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var (
		id        int64
		userID    int64
		status    model.OrderStatus
		createdAt time.Time
	)
	if err := q.QueryRow(ctx, query, orderID).Scan(&id, &userID, &status, &createdAt); err != nil {
		return nil, translateErr(err)
	}

	lines, err := loadLines(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return model.RestoreOrder(id, userID, status, createdAt, lines), nil
}

func loadLines(ctx context.Context, q queryer, orderID int64) ([]model.OrderLine, error) {
	const query = `SELECT product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func loadLinesBatch(ctx context.Context, q queryer, orderIDs []int64) (map[int64][]model.OrderLine, error) {
	const query = `SELECT order_id, product_id, quantity FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`
	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	result := make(map[int64][]model.OrderLine, len(orderIDs))
	for rows.Next() {
		var (
			orderID int64
			line    model.OrderLine
		)
		if err := rows.Scan(&orderID, &line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		result[orderID] = append(result[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderLogRepository) Record(ctx context.Context, change model.StatusChange) error {
	const query = `INSERT INTO order_logs (order_id, from_status, to_status, changed_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.storage.pool.Exec(ctx, query, change.OrderID, change.From, change.To, change.ChangedAt); err != nil {
		return translateErr(err)
	}
	return nil
}
