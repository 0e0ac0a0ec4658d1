package service

import (
	"Freshgo/dao"
	"Freshgo/models"
	"Freshgo/types"
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

// memPointStore implements PointStore in memory. The mutex stands in for
// the conditional UPDATE the real implementation does: balance check and
// decrement happen under one lock, same as one atomic statement.
type memPointStore struct {
	mu       sync.Mutex
	nextID   uint64
	accounts map[int64]*models.UserPoint
	logs     []*models.BonusPointLog
	rules    map[int]*models.BonusPointRule
}

func newMemPointStore() *memPointStore {
	return &memPointStore{
		accounts: make(map[int64]*models.UserPoint),
		rules:    make(map[int]*models.BonusPointRule),
	}
}

func (m *memPointStore) seedBalance(userID int64, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[userID] = &models.UserPoint{UserID: userID, Balance: balance, TotalEarned: balance}
}

func (m *memPointStore) seedRule(ruleID int, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[ruleID] = &models.BonusPointRule{RuleID: ruleID, Value: value}
}

// ledgerSum 对账用：全部流水净额
func (m *memPointStore) ledgerSum(userID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, l := range m.logs {
		if l.UserID == userID {
			sum += l.Amount
		}
	}
	return sum
}

func (m *memPointStore) GetAccount(_ context.Context, userID int64) (*models.UserPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *account
	return &cp, nil
}

func (m *memPointStore) CheckLogExists(_ context.Context, userID int64, sourceID string, ruleID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs {
		if l.UserID == userID && l.SourceID == sourceID && l.RuleID == ruleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPointStore) ApplyEarn(_ context.Context, logRecord *models.BonusPointLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[logRecord.UserID]
	if !ok {
		account = &models.UserPoint{UserID: logRecord.UserID}
		m.accounts[logRecord.UserID] = account
	}
	account.Balance += logRecord.Amount
	account.TotalEarned += logRecord.Amount
	m.nextID++
	logRecord.ID = m.nextID
	m.logs = append(m.logs, logRecord)
	return nil
}

func (m *memPointStore) ApplyRedeem(_ context.Context, userID int64, amount int64, sourceID string) (*models.BonusPointLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[userID]
	if !ok || account.Balance < amount {
		return nil, dao.ErrInsufficientPoints
	}
	account.Balance -= amount
	account.TotalUsed += amount
	m.nextID++
	logRecord := &models.BonusPointLog{
		ID:       m.nextID,
		UserID:   userID,
		RuleID:   models.RuleRedeem,
		Amount:   -amount,
		SourceID: sourceID,
	}
	m.logs = append(m.logs, logRecord)
	return logRecord, nil
}

// reverse 模拟撤单事务里的冲正：置零负数流水并返还余额，幂等
func (m *memPointStore) reverse(logID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs {
		if l.ID != logID {
			continue
		}
		if l.Amount >= 0 {
			return
		}
		credited := -l.Amount
		l.Amount = 0
		account := m.accounts[l.UserID]
		account.Balance += credited
		account.TotalUsed -= credited
		return
	}
}

func (m *memPointStore) ListRecords(_ context.Context, userID int64, action string, cursor int64, limit int) ([]models.BonusPointLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.BonusPointLog, 0)
	for i := len(m.logs) - 1; i >= 0; i-- {
		l := m.logs[i]
		if l.UserID != userID {
			continue
		}
		if cursor > 0 && l.ID >= uint64(cursor) {
			continue
		}
		if action == "INCOME" && l.Amount < 0 {
			continue
		}
		if action == "EXPENSE" && l.Amount >= 0 {
			continue
		}
		out = append(out, *l)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memPointStore) GetRule(_ context.Context, ruleID int) (*models.BonusPointRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rule, ok := m.rules[ruleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rule
	return &cp, nil
}

func (m *memPointStore) SaveRule(_ context.Context, ruleID int, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[ruleID] = &models.BonusPointRule{RuleID: ruleID, Value: value}
	return nil
}

// memUsers implements UserReader
type memUsers struct {
	users map[int64]*models.Users
}

func newMemUsers(users ...*models.Users) *memUsers {
	m := &memUsers{users: make(map[int64]*models.Users)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) FindById(_ context.Context, id int64) (*models.Users, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

// memProducts implements ProductReader
type memProducts struct {
	products map[uint64]*models.Product
}

func newMemProducts(products ...*models.Product) *memProducts {
	m := &memProducts{products: make(map[uint64]*models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) GetByIds(_ context.Context, ids []uint64) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok && p.Status == 1 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) GetInventory(_ context.Context, productID uint64) (uint32, error) {
	p, ok := m.products[productID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return p.Stock, nil
}

// memOrderStore implements OrderStore with CAS semantics under a mutex.
// afterFind 在第一次 FindBySn 返回后触发一次，用来模拟并发对手插队；
// cancelErr 模拟撤单事务内的存储故障，事务必须整体回滚
type memOrderStore struct {
	mu        sync.Mutex
	orders    map[string]*models.Order
	items     map[int64][]*models.OrderItem
	consignee map[int64]*models.OrderConsignee
	afterFind func()
	points    *memPointStore
	comps     *memCompensations
	cancelErr error
}

func newMemOrderStore(orders ...*models.Order) *memOrderStore {
	m := &memOrderStore{
		orders:    make(map[string]*models.Order),
		items:     make(map[int64][]*models.OrderItem),
		consignee: make(map[int64]*models.OrderConsignee),
	}
	for _, o := range orders {
		m.orders[o.OrderSn] = o
	}
	return m
}

func (m *memOrderStore) status(orderSn string) models.OrderStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[orderSn].Status
}

func (m *memOrderStore) FindBySn(_ context.Context, orderSn string) (*models.Order, error) {
	m.mu.Lock()
	order, ok := m.orders[orderSn]
	if !ok {
		m.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	cp := *order
	m.mu.Unlock()

	if m.afterFind != nil {
		hook := m.afterFind
		m.afterFind = nil
		hook()
	}
	return &cp, nil
}

func (m *memOrderStore) FindScoped(ctx context.Context, orderSn string, userID int64, admin bool) (*models.Order, error) {
	order, err := m.FindBySn(ctx, orderSn)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (m *memOrderStore) CasStatus(_ context.Context, orderSn string, from, to models.OrderStatus, _ map[string]interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderSn]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	return true, nil
}

// CancelAggregate 和真实实现一样全有或全无：状态没变时不产生任何写入，
// 事务内故障时状态、余额、补偿任务都保持原样
func (m *memOrderStore) CancelAggregate(_ context.Context, order *models.Order, to models.OrderStatus, tasks []*models.CompensationTask) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.orders[order.OrderSn]
	if !ok || cur.Status != order.Status {
		return false, nil
	}
	if m.cancelErr != nil {
		return false, m.cancelErr
	}
	cur.Status = to
	if to == models.OrderStatusRevoked {
		now := time.Now()
		cur.RevokedAt = &now
	}
	if cur.RedeemLogID != nil && m.points != nil {
		m.points.reverse(*cur.RedeemLogID)
	}
	if m.comps != nil && len(tasks) > 0 {
		m.comps.mu.Lock()
		m.comps.tasks = append(m.comps.tasks, tasks...)
		m.comps.mu.Unlock()
	}
	return true, nil
}

func (m *memOrderStore) Items(_ context.Context, orderID int64) ([]*models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[orderID], nil
}

func (m *memOrderStore) Consignee(_ context.Context, orderID int64) (*models.OrderConsignee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.consignee[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *memOrderStore) ListByUser(_ context.Context, userID int64, cursor int64, limit int) ([]*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Order, 0)
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		if cursor > 0 && o.ID >= cursor {
			continue
		}
		out = append(out, o)
	}
	// map 遍历无序，按 ID 倒序排一下
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ID > out[i].ID {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memCompensations captures enqueued compensation tasks
type memCompensations struct {
	mu    sync.Mutex
	tasks []*models.CompensationTask
}

func (m *memCompensations) ListPending(_ context.Context, limit int) ([]*models.CompensationTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.CompensationTask, 0, limit)
	for _, t := range m.tasks {
		if t.Status != models.CompensationPending {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memCompensations) MarkDone(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id {
			t.Status = models.CompensationDone
			return nil
		}
	}
	return nil
}

// memJournal implements PayJournal
type memJournal struct {
	mu     sync.Mutex
	marked []string
}

func (m *memJournal) MarkPaySuccess(_ context.Context, orderSn string, _ string, _ []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked = append(m.marked, orderSn)
	return nil
}

// memPublisher implements EventPublisher
type memPublisher struct {
	mu   sync.Mutex
	tags []string
}

func (m *memPublisher) SendMsg(_ context.Context, _ string, tag string, _ []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags = append(m.tags, tag)
	return nil
}

// recordingFulfillment implements IFulfillmentService
type recordingFulfillment struct {
	outbounds []string
}

func (r *recordingFulfillment) CreateOutbound(_ context.Context, order *models.Order, _ *models.OrderConsignee, _ []*models.OrderItem) error {
	r.outbounds = append(r.outbounds, order.OrderSn)
	return nil
}

func (r *recordingFulfillment) LogisticsDetail(_ context.Context, _ string) (*types.LogisticsDetail, error) {
	return nil, nil
}

// recordingInvoice implements IInvoiceService
type recordingInvoice struct {
	issued []string
}

func (r *recordingInvoice) Issue(_ context.Context, order *models.Order, _ *models.OrderConsignee) error {
	r.issued = append(r.issued, order.OrderSn)
	return nil
}

// memOrderWriter implements OrderWriter; redemption goes through the
// point store the way the real transaction does
type memOrderWriter struct {
	points       *memPointStore
	created      *models.Order
	items        []*models.OrderItem
	beforeCreate func()
}

func (m *memOrderWriter) CreateAggregate(ctx context.Context, order *models.Order, _ *models.OrderConsignee, items []*models.OrderItem, usePoints int64) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}
	if usePoints > 0 {
		logRecord, err := m.points.ApplyRedeem(ctx, order.UserID, usePoints, order.OrderSn)
		if err != nil {
			return err
		}
		order.RedeemLogID = &logRecord.ID
	}
	m.created = order
	m.items = items
	return nil
}
