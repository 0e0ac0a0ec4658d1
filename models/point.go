package models

import "time"

type UserPoint struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex"`
	Balance     int64     `gorm:"column:balance;default:0"`
	TotalEarned int64     `gorm:"column:total_earned;default:0"`
	TotalUsed   int64     `gorm:"column:total_used;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (UserPoint) TableName() string {
	return "user_points"
}

// 积分规则固定 ID
const (
	RuleCashback    = 1 // 消费返点比例（推荐人返点，value 为百分比）
	RuleRegister    = 2 // 注册奖励
	RuleVipUpgrade  = 3 // 升级 VIP 奖励
	RuleSvipUpgrade = 4 // 升级 SVIP 奖励
	RuleCheckin     = 5 // 每日签到奖励
	RuleRedeem      = 6 // 购物抵扣（负向）
)

// BonusPointLog 积分流水。Amount 正数为收入、负数为抵扣；
// 抵扣流水在订单取消时被冲正：Amount 置零并把积分加回余额，
// 一条流水最多被冲正一次
type BonusPointLog struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index:idx_user_id"`
	RuleID    int       `gorm:"column:rule_id;index:idx_rule_id"`
	Amount    int64     `gorm:"column:amount"`
	SourceID  string    `gorm:"column:source_id;index:idx_source_id;size:64"` // 业务来源单号，幂等键
	Remark    string    `gorm:"column:remark;size:255"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BonusPointLog) TableName() string {
	return "bonus_point_logs"
}

// BonusPointRule 积分规则表，除返点比例外均为固定面值
type BonusPointRule struct {
	RuleID    int       `gorm:"primaryKey;column:rule_id"`
	Name      string    `gorm:"column:name;size:64"`
	Value     int64     `gorm:"column:value"` // 返点规则为百分比，其余为积分面值
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BonusPointRule) TableName() string {
	return "bonus_point_rules"
}
