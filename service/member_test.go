package service

import (
	"Freshgo/models"
	"Freshgo/types"
	"testing"
)

func TestDeriveLevel(t *testing.T) {
	tests := []struct {
		name string
		user models.Users
		want types.MemberLevel
	}{
		{
			name: "未开通任何会员",
			user: models.Users{FollowFacebook: true, FollowYoutube: true, FollowInstagram: true},
			want: types.LevelNormal,
		},
		{
			name: "开通VIP但无关注",
			user: models.Users{VipActivated: true},
			want: types.LevelNormal,
		},
		{
			name: "开通VIP且关注一个",
			user: models.Users{VipActivated: true, FollowYoutube: true},
			want: types.LevelVip,
		},
		{
			name: "开通SVIP关注两个",
			user: models.Users{SvipActivated: true, FollowFacebook: true, FollowInstagram: true},
			want: types.LevelSvip,
		},
		{
			name: "开通SVIP仅一个关注不达标",
			user: models.Users{SvipActivated: true, FollowFacebook: true},
			want: types.LevelNormal,
		},
		{
			name: "开通SVIP且满足VIP条件",
			user: models.Users{SvipActivated: true, VipActivated: true, FollowFacebook: true},
			want: types.LevelSvip,
		},
		{
			name: "仅开通SVIP无关注",
			user: models.Users{SvipActivated: true},
			want: types.LevelNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveLevel(&tt.user); got != tt.want {
				t.Errorf("DeriveLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
