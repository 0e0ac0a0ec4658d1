package utils

import (
	"strings"
	"testing"
)

func TestGenerateOrderSn_Unique(t *testing.T) {
	const n = 5000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		sn := GenerateOrderSn(int64(i))
		if !strings.HasPrefix(sn, "FG") {
			t.Fatalf("unexpected prefix: %s", sn)
		}
		if _, ok := seen[sn]; ok {
			t.Fatalf("duplicate order sn: %s", sn)
		}
		seen[sn] = struct{}{}
	}
}

func TestGenerateRelateNo(t *testing.T) {
	a := GenerateRelateNo(1001)
	b := GenerateRelateNo(1002)
	if a == b {
		t.Fatalf("relate no collision: %s", a)
	}
	if len(a) < 12 {
		t.Fatalf("relate no too short: %s", a)
	}
	// 同一订单必须稳定，开票重试依赖这一点
	if a != GenerateRelateNo(1001) {
		t.Fatal("relate no not deterministic")
	}
}

func TestGenerateTradeNo(t *testing.T) {
	no := GenerateTradeNo("FG", 42)
	if !strings.HasPrefix(no, "FG") || !strings.HasSuffix(no, "42") {
		t.Fatalf("unexpected trade no: %s", no)
	}
}
