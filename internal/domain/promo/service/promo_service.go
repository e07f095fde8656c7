package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"lms_commerce/internal/domain/promo/model"
	"lms_commerce/internal/domain/promo/repository"
	"lms_commerce/internal/pkg/worker"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrOutOfStock      = errors.New("discount code out of stock")
	ErrAlreadyClaimed  = errors.New("you have already claimed this code")
	ErrDiscountInvalid = errors.New("discount code is not valid")
)

type PromoService interface {
	CreateDiscountCode(code, name string, percentOff, total int, startTime, endTime time.Time) (*model.DiscountCode, error)
	ClaimDiscount(userID, code string) error
	// ApplyDiscount validates a claimed code and returns the discounted amount.
	ApplyDiscount(userID, code string, amount float64) (float64, error)
	// ConsumeDiscount marks a claimed code as used.
	ConsumeDiscount(userID, code string) error
}

type promoService struct {
	repo       repository.PromoRepository
	rdb        *redis.Client
	soldOutMap sync.Map // local cache of sold-out discount IDs
	workerPool *worker.WorkerPool
}

func NewPromoService(repo repository.PromoRepository, rdb *redis.Client) PromoService {
	pool := worker.NewWorkerPool(repo, 5, 1000)
	pool.Start()

	return &promoService{
		repo:       repo,
		rdb:        rdb,
		workerPool: pool,
	}
}

func (s *promoService) CreateDiscountCode(code, name string, percentOff, total int, startTime, endTime time.Time) (*model.DiscountCode, error) {
	if percentOff <= 0 || percentOff > 100 {
		return nil, errors.New("percentOff must be between 1 and 100")
	}

	dc := &model.DiscountCode{
		Code:       code,
		Name:       name,
		PercentOff: percentOff,
		Total:      total,
		Stock:      total,
		StartTime:  startTime,
		EndTime:    endTime,
	}

	if err := s.repo.Create(dc); err != nil {
		return nil, err
	}

	// Warm redis with the stock counter.
	stockKey := fmt.Sprintf("promo:stock:%s", dc.ID)
	s.rdb.Set(context.Background(), stockKey, total, 0)

	return dc, nil
}

// Lua: reject repeat claims, check and decrement stock, record the claimer.
var claimScript = redis.NewScript(`
	local user_key = KEYS[1]
	local stock_key = KEYS[2]
	local user_id = ARGV[1]

	if redis.call("SISMEMBER", user_key, user_id) == 1 then
		return -1
	end

	local stock = tonumber(redis.call("GET", stock_key))
	if stock == nil or stock <= 0 then
		return -2
	end

	redis.call("DECR", stock_key)
	redis.call("SADD", user_key, user_id)

	return 1
`)

func (s *promoService) ClaimDiscount(userID, code string) error {
	dc, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscountInvalid
		}
		return err
	}

	now := time.Now()
	if now.Before(dc.StartTime) || now.After(dc.EndTime) {
		return ErrDiscountInvalid
	}

	if _, ok := s.soldOutMap.Load(dc.ID); ok {
		return ErrOutOfStock
	}

	ctx := context.Background()
	userKey := fmt.Sprintf("promo:users:%s", dc.ID)
	stockKey := fmt.Sprintf("promo:stock:%s", dc.ID)

	result, err := claimScript.Run(ctx, s.rdb, []string{userKey, stockKey}, userID).Int()
	if err != nil {
		return fmt.Errorf("redis error: %v", err)
	}

	if result == -1 {
		return ErrAlreadyClaimed
	}
	if result == -2 {
		s.soldOutMap.Store(dc.ID, true)
		return ErrOutOfStock
	}

	// Redis approved the claim; postgres write goes through the pool.
	s.workerPool.AddTask(worker.ClaimTask{
		UserID:     userID,
		DiscountID: dc.ID,
	})

	return nil
}

func (s *promoService) lookupClaim(userID, code string) (*model.DiscountCode, *model.UserDiscount, error) {
	dc, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDiscountInvalid
		}
		return nil, nil, err
	}

	now := time.Now()
	if now.Before(dc.StartTime) || now.After(dc.EndTime) {
		return nil, nil, ErrDiscountInvalid
	}

	ud, err := s.repo.GetUnusedUserDiscount(userID, dc.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDiscountInvalid
		}
		return nil, nil, err
	}
	return dc, ud, nil
}

// ApplyDiscount prices a claimed code without consuming it, so a checkout
// that fails after pricing does not burn the claim.
func (s *promoService) ApplyDiscount(userID, code string, amount float64) (float64, error) {
	dc, _, err := s.lookupClaim(userID, code)
	if err != nil {
		return amount, err
	}

	discounted := amount * (1 - float64(dc.PercentOff)/100)
	// Round to two decimals, prices are stored in major units.
	return math.Round(discounted*100) / 100, nil
}

func (s *promoService) ConsumeDiscount(userID, code string) error {
	_, ud, err := s.lookupClaim(userID, code)
	if err != nil {
		return err
	}
	return s.repo.MarkUsed(ud.ID)
}
