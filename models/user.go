package models

import (
	"time"

	"gorm.io/gorm"
)

// Users 用户表。会员等级不落库，由开通标记和社媒关注标记实时推导
type Users struct {
	ID              int64          `gorm:"primaryKey;column:id" json:"id"`
	Nickname        string         `gorm:"column:nickname;size:64" json:"nickname"`
	Mobile          string         `gorm:"column:mobile;size:32;index:idx_mobile" json:"mobile"`
	Role            string         `gorm:"column:role;size:16;default:'USER'" json:"role"` // USER / ADMIN
	ReferrerID      *int64         `gorm:"column:referrer_id;index:idx_referrer_id" json:"referrer_id"`
	VipActivated    bool           `gorm:"column:vip_activated;default:false" json:"vip_activated"`
	SvipActivated   bool           `gorm:"column:svip_activated;default:false" json:"svip_activated"`
	FollowFacebook  bool           `gorm:"column:follow_facebook;default:false" json:"follow_facebook"`
	FollowYoutube   bool           `gorm:"column:follow_youtube;default:false" json:"follow_youtube"`
	FollowInstagram bool           `gorm:"column:follow_instagram;default:false" json:"follow_instagram"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Users) TableName() string {
	return "users"
}
