package service

import (
	"Freshgo/models"
	"Freshgo/types"
	"context"
)

// UserReader 用户读接口
type UserReader interface {
	FindById(ctx context.Context, id int64) (*models.Users, error)
}

type MemberService struct {
	Users UserReader
}

var _ IMemberService = (*MemberService)(nil)

type IMemberService interface {
	LevelOf(ctx context.Context, userID int64) (types.MemberLevel, error)
}

// LevelOf 推导会员等级：
// SVIP 需开通 SVIP 且（社媒关注满 2 个，或同时满足 VIP 条件）；
// VIP 需开通 VIP 且至少关注 1 个社媒
func (m *MemberService) LevelOf(ctx context.Context, userID int64) (types.MemberLevel, error) {
	user, err := m.Users.FindById(ctx, userID)
	if err != nil {
		return types.LevelNormal, err
	}
	return DeriveLevel(user), nil
}

func DeriveLevel(user *models.Users) types.MemberLevel {
	follows := 0
	if user.FollowFacebook {
		follows++
	}
	if user.FollowYoutube {
		follows++
	}
	if user.FollowInstagram {
		follows++
	}

	isVip := user.VipActivated && follows >= 1
	if user.SvipActivated && (follows >= 2 || isVip) {
		return types.LevelSvip
	}
	if isVip {
		return types.LevelVip
	}
	return types.LevelNormal
}
