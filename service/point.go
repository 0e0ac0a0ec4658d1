package service

import (
	"Freshgo/dao"
	"Freshgo/models"
	"Freshgo/pkg/response"
	"Freshgo/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PointStore 积分台账存储接口。实现方必须保证
// ApplyRedeem 的余额检查和扣减是同一条原子条件更新。
// 抵扣冲正不在这里：它必须和订单状态变更同一个事务，挂在订单存储的撤单事务上
type PointStore interface {
	GetAccount(ctx context.Context, userID int64) (*models.UserPoint, error)
	CheckLogExists(ctx context.Context, userID int64, sourceID string, ruleID int) (bool, error)
	ApplyEarn(ctx context.Context, logRecord *models.BonusPointLog) error
	ApplyRedeem(ctx context.Context, userID int64, amount int64, sourceID string) (*models.BonusPointLog, error)
	ListRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) ([]models.BonusPointLog, error)
	GetRule(ctx context.Context, ruleID int) (*models.BonusPointRule, error)
	SaveRule(ctx context.Context, ruleID int, value int64) error
}

type PointService struct {
	Store PointStore
	Users UserReader
	Redis *redis.Client
}

var _ IPointService = (*PointService)(nil)

type IPointService interface {
	Balance(ctx context.Context, userID int64) (*types.PointsAccount, error)
	Earn(ctx context.Context, userID int64, ruleID int, sourceID string, remark string) error
	Checkin(ctx context.Context, userID int64, points int64) error
	Redeem(ctx context.Context, userID int64, amount int64, sourceID string) (*models.BonusPointLog, error)
	OrderCashback(ctx context.Context, order *models.Order, deliveryFee int64) error
	ListRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) (*types.ListPointsRecord, error)
	GetCashbackRule(ctx context.Context) (*types.CashbackRuleResponse, error)
	UpdateCashbackRule(ctx context.Context, value int64) error
}

func (p *PointService) Balance(ctx context.Context, userID int64) (*types.PointsAccount, error) {
	account, err := p.Store.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 没有记录说明还没有任何积分动账
			return &types.PointsAccount{}, nil
		}
		return nil, err
	}
	return &types.PointsAccount{
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
		TotalUsed:   account.TotalUsed,
	}, nil
}

// Earn 固定面值入账（注册奖励、升级奖励），面值取规则表配置
func (p *PointService) Earn(ctx context.Context, userID int64, ruleID int, sourceID string, remark string) error {
	rule, err := p.Store.GetRule(ctx, ruleID)
	if err != nil {
		return err
	}
	return p.earn(ctx, userID, ruleID, sourceID, rule.Value, remark)
}

// Checkin 每日签到，面值由签到日程侧传入，redis 兜底同一天只入账一次
func (p *PointService) Checkin(ctx context.Context, userID int64, points int64) error {
	if points <= 0 {
		return response.NewError(40004, "签到积分必须大于0")
	}
	day := time.Now().Format("20060102")
	key := fmt.Sprintf("freshgo:checkin:%d:%s", userID, day)
	ok, err := p.Redis.SetNX(ctx, key, 1, 48*time.Hour).Result()
	if err != nil {
		return err
	}
	if !ok {
		return response.NewError(40005, "今日已签到")
	}
	return p.earn(ctx, userID, models.RuleCheckin, "checkin:"+day, points, "每日签到")
}

func (p *PointService) earn(ctx context.Context, userID int64, ruleID int, sourceID string, points int64, remark string) error {
	if points <= 0 {
		return nil
	}
	exists, err := p.Store.CheckLogExists(ctx, userID, sourceID, ruleID)
	if err != nil {
		return err
	}
	if exists {
		// 重复投递直接吞掉
		return nil
	}
	return p.Store.ApplyEarn(ctx, &models.BonusPointLog{
		UserID:   userID,
		RuleID:   ruleID,
		Amount:   points,
		SourceID: sourceID,
		Remark:   remark,
	})
}

func (p *PointService) Redeem(ctx context.Context, userID int64, amount int64, sourceID string) (*models.BonusPointLog, error) {
	if amount <= 0 {
		return nil, response.NewError(40004, "抵扣积分必须大于0")
	}
	logRecord, err := p.Store.ApplyRedeem(ctx, userID, amount, sourceID)
	if err != nil {
		if errors.Is(err, dao.ErrInsufficientPoints) {
			return nil, response.ErrInsufficientPoints
		}
		return nil, err
	}
	return logRecord, nil
}

// OrderCashback 消费返点：按订单去掉运费后的金额乘返点比例，
// 返给下单人的推荐人。无推荐人或未配置比例则不返
func (p *PointService) OrderCashback(ctx context.Context, order *models.Order, deliveryFee int64) error {
	user, err := p.Users.FindById(ctx, order.UserID)
	if err != nil {
		return err
	}
	if user.ReferrerID == nil {
		return nil
	}
	rule, err := p.Store.GetRule(ctx, models.RuleCashback)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	points := CashbackPoints(order.TotalAmount, deliveryFee, rule.Value)
	if points <= 0 {
		return nil
	}
	return p.earn(ctx, *user.ReferrerID, models.RuleCashback, order.OrderSn, points,
		fmt.Sprintf("推荐返点 订单%s", order.OrderSn))
}

// CashbackPoints 返点计算：(订单总额 - 运费) * 比例 / 100，向下取整
func CashbackPoints(totalAmount, deliveryFee, ratePercent int64) int64 {
	base := totalAmount - deliveryFee
	if base <= 0 || ratePercent <= 0 {
		return 0
	}
	return base * ratePercent / 100
}

func (p *PointService) ListRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) (*types.ListPointsRecord, error) {
	logs, err := p.Store.ListRecords(ctx, userID, action, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListPointsRecord{
		Records: make([]types.PointRecord, 0),
		HasMore: false,
	}

	if len(logs) > limit {
		resp.HasMore = true
		logs = logs[:limit]
		resp.NextCursor = int64(logs[len(logs)-1].ID)
	}

	for _, l := range logs {
		orderType := "INCOME"
		if l.Amount < 0 {
			orderType = "EXPENSE"
		}
		resp.Records = append(resp.Records, types.PointRecord{
			ID:          l.ID,
			Amount:      l.Amount,
			RuleID:      l.RuleID,
			Description: l.Remark,
			OrderType:   orderType,
			CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}

func (p *PointService) GetCashbackRule(ctx context.Context) (*types.CashbackRuleResponse, error) {
	rule, err := p.Store.GetRule(ctx, models.RuleCashback)
	if err != nil {
		return nil, err
	}
	return &types.CashbackRuleResponse{RuleID: rule.RuleID, Value: rule.Value}, nil
}

func (p *PointService) UpdateCashbackRule(ctx context.Context, value int64) error {
	return p.Store.SaveRule(ctx, models.RuleCashback, value)
}
