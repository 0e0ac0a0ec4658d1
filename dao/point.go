package dao

import (
	"Freshgo/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrInsufficientPoints 条件扣减未命中（余额不足）
var ErrInsufficientPoints = errors.New("insufficient point balance")

type Point struct {
	Repo[models.UserPoint]
}

func NewPoint(db *gorm.DB) *Point {
	return &Point{
		Repo: NewRepo[models.UserPoint](db),
	}
}

func (p *Point) GetAccount(ctx context.Context, userID int64) (*models.UserPoint, error) {
	var account models.UserPoint
	err := p.Db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
	return &account, err
}

// CheckLogExists 幂等检查：同一业务来源同一规则只入账一次
func (p *Point) CheckLogExists(ctx context.Context, userID int64, sourceID string, ruleID int) (bool, error) {
	var count int64
	err := p.Db.WithContext(ctx).Model(&models.BonusPointLog{}).
		Where("user_id = ? AND source_id = ? AND rule_id = ?", userID, sourceID, ruleID).
		Count(&count).Error
	return count > 0, err
}

// ApplyEarn 入账事务：流水 + 余额原子加，首次入账自动开户
func (p *Point) ApplyEarn(ctx context.Context, logRecord *models.BonusPointLog) error {
	return p.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserPoint{}).
			Where("user_id = ?", logRecord.UserID).
			Updates(map[string]interface{}{
				// gorm.Expr 保证并发下的原子加减，避免数据覆盖
				"balance":      gorm.Expr("balance + ?", logRecord.Amount),
				"total_earned": gorm.Expr("total_earned + ?", logRecord.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 开户失败必须捕获，防止出现有流水没账户的情况
			account := &models.UserPoint{
				UserID:      logRecord.UserID,
				Balance:     logRecord.Amount,
				TotalEarned: logRecord.Amount,
			}
			if err := tx.Create(account).Error; err != nil {
				return err
			}
		}
		return tx.Create(logRecord).Error
	})
}

// ApplyRedeem 抵扣事务：检查和扣减必须是同一条条件更新，
// 并发抵扣各自竞争 where balance >= ?，不可能把余额扣成负数
func (p *Point) ApplyRedeem(ctx context.Context, userID int64, amount int64, sourceID string) (*models.BonusPointLog, error) {
	var logRecord *models.BonusPointLog
	err := p.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		logRecord, err = applyRedeem(tx, userID, amount, sourceID)
		return err
	})
	return logRecord, err
}

// applyRedeem 供建单事务复用，必须在事务内调用
func applyRedeem(tx *gorm.DB, userID int64, amount int64, sourceID string) (*models.BonusPointLog, error) {
	res := tx.Model(&models.UserPoint{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"total_used": gorm.Expr("total_used + ?", amount),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientPoints
	}

	logRecord := &models.BonusPointLog{
		UserID:   userID,
		RuleID:   models.RuleRedeem,
		Amount:   -amount,
		SourceID: sourceID,
		Remark:   "购物积分抵扣",
	}
	if err := tx.Create(logRecord).Error; err != nil {
		return nil, err
	}
	return logRecord, nil
}

// reverseRedeem 冲正抵扣流水：把负数流水置零并把积分加回余额。
// 流水不存在或已被冲正都按无事发生处理。
// 供撤单事务复用，必须在事务内调用
func reverseRedeem(tx *gorm.DB, logID uint64) error {
	var logRecord models.BonusPointLog
	if err := tx.Where("id = ?", logID).First(&logRecord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if logRecord.Amount >= 0 {
		// 已冲正过或本来就是收入流水
		return nil
	}

	// 按旧值 CAS 置零，并发双重冲正只会有一方命中
	res := tx.Model(&models.BonusPointLog{}).
		Where("id = ? AND amount = ?", logID, logRecord.Amount).
		Update("amount", 0)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	credited := -logRecord.Amount
	return tx.Model(&models.UserPoint{}).
		Where("user_id = ?", logRecord.UserID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", credited),
			"total_used": gorm.Expr("total_used - ?", credited),
		}).Error
}

// ListRecords 分页筛选查询
func (p *Point) ListRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) ([]models.BonusPointLog, error) {
	var logs []models.BonusPointLog
	query := p.Db.WithContext(ctx).Where("user_id = ?", userID)

	switch action {
	case "INCOME":
		query = query.Where("amount > ?", 0)
	case "EXPENSE":
		query = query.Where("amount < ?", 0)
	}

	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (p *Point) GetRule(ctx context.Context, ruleID int) (*models.BonusPointRule, error) {
	var rule models.BonusPointRule
	err := p.Db.WithContext(ctx).Where("rule_id = ?", ruleID).First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (p *Point) SaveRule(ctx context.Context, ruleID int, value int64) error {
	return p.Db.WithContext(ctx).Model(&models.BonusPointRule{}).
		Where("rule_id = ?", ruleID).
		Update("value", value).Error
}
