package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/pos-service/config"
	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/internal/repository"
	"github.com/d60-Lab/pos-service/internal/service"
	"github.com/d60-Lab/pos-service/pkg/database"
	"github.com/d60-Lab/pos-service/pkg/logger"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// 下单工作流基准：N 次下单，CONC 个并发 worker。
// 库存校验与扣减之间没有事务/锁，CONC>1 时可观察到超卖。
func main() {
	cfg := must(config.Load())
	_ = logger.Init(cfg.Server.Mode)
	db := must(database.InitDB(cfg))

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderSvc := service.NewOrderService(orderRepo, productRepo, nil)

	ctx := context.Background()
	N := envInt("N", 10000)
	CONC := envInt("CONC", 1)
	STOCK := envInt("STOCK", N)

	buyer := model.User{ID: 1, Username: "bench_user", Email: "bench@example.com"}
	_ = db.Where("id = ?", buyer.ID).FirstOrCreate(&buyer).Error
	product := model.Product{ID: 1, Name: "Bench Product", Price: 9.99, StockQuantity: STOCK, IsActive: true}
	_ = db.Where("id = ?", product.ID).FirstOrCreate(&product).Error
	_ = productRepo.SetStock(ctx, product.ID, STOCK)

	recs := make([]time.Duration, 0, N)
	recCh := make(chan time.Duration, N)
	feed := make(chan int, N)
	for i := 0; i < N; i++ {
		feed <- i
	}
	close(feed)

	workers := CONC
	if workers > N {
		workers = N
	}
	done := make(chan error, workers)
	var failures atomic.Int64

	t0 := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			for range feed {
				st := time.Now()
				_, err := orderSvc.Create(ctx, &service.CreateOrderRequest{
					UserID: buyer.ID,
					Items:  []service.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
				})
				if err != nil {
					failures.Add(1)
				}
				recCh <- time.Since(st)
			}
			done <- nil
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(recCh)
	for d := range recCh {
		recs = append(recs, d)
	}
	total := time.Since(t0)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	remaining, _ := productRepo.GetActive(ctx, product.ID)
	orders, _ := orderRepo.CountAll(ctx)
	fmt.Printf("N=%d, CONC=%d, STOCK=%d\n", N, CONC, STOCK)
	fmt.Printf("Create order: total %v, per op %v, p50 %v, p95 %v, p99 %v, failures %d\n",
		total, total/time.Duration(N), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99), failures.Load())
	if remaining != nil {
		fmt.Printf("Orders=%d, stock remaining=%d (negative = oversold)\n", orders, remaining.StockQuantity)
	}
}
