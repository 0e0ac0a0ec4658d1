package types

type PointsAccount struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
	TotalUsed   int64 `json:"total_used"`
}

type PointRecord struct {
	ID          uint64 `json:"id"`
	Amount      int64  `json:"amount"`
	RuleID      int    `json:"rule_id"`
	Description string `json:"description"`
	OrderType   string `json:"order_type"` // INCOME / EXPENSE
	CreatedAt   string `json:"created_at"`
}

type ListPointsRecord struct {
	Records    []PointRecord `json:"records"`
	NextCursor int64         `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

type CheckinRequest struct {
	Points int64 `json:"points" binding:"required,min=1"` // 当日签到面值由签到日程侧传入
}

type CashbackRuleResponse struct {
	RuleID int   `json:"rule_id"`
	Value  int64 `json:"value"` // 百分比
}

type UpdateCashbackRuleRequest struct {
	Value int64 `json:"value" binding:"min=0,max=100"`
}
