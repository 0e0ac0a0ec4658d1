package models

import "testing"

func TestNextStatus_Table(t *testing.T) {
	cases := []struct {
		name    string
		from    OrderStatus
		trigger OrderTrigger
		want    OrderStatus
		ok      bool
	}{
		{"待支付取消", OrderStatusWaitPayment, TriggerUserCancel, OrderStatusCancelled, true},
		{"待支付回调成功", OrderStatusWaitPayment, TriggerPaySuccess, OrderStatusWaitDeliver, true},
		{"待发货撤单", OrderStatusWaitDeliver, TriggerUserCancel, OrderStatusRevoked, true},
		{"待发货签收", OrderStatusWaitDeliver, TriggerDeliverDone, OrderStatusCompleted, true},
		{"取消后回调补偿", OrderStatusCancelled, TriggerPaySuccess, OrderStatusRevoked, true},
		{"已完成取消被拒", OrderStatusCompleted, TriggerUserCancel, OrderStatusCompleted, false},
		{"已撤单再取消被拒", OrderStatusRevoked, TriggerUserCancel, OrderStatusRevoked, false},
		{"已撤单回调被拒", OrderStatusRevoked, TriggerPaySuccess, OrderStatusRevoked, false},
		{"待支付签收非法", OrderStatusWaitPayment, TriggerDeliverDone, OrderStatusWaitPayment, false},
		{"取消后签收非法", OrderStatusCancelled, TriggerDeliverDone, OrderStatusCancelled, false},
		{"已完成回调被拒", OrderStatusCompleted, TriggerPaySuccess, OrderStatusCompleted, false},
	}

	for _, c := range cases {
		got, ok := NextStatus(c.from, c.trigger)
		if ok != c.ok {
			t.Fatalf("%s: ok = %v, want %v", c.name, ok, c.ok)
		}
		if got != c.want {
			t.Fatalf("%s: next = %v, want %v", c.name, got, c.want)
		}
		// 非法迁移不得改变状态
		if !ok && got != c.from {
			t.Fatalf("%s: rejected transition mutated status", c.name)
		}
	}
}
