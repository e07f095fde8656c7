package worker

import (
	"log"
	"time"

	"lms_commerce/internal/domain/promo/model"
	"lms_commerce/internal/domain/promo/repository"
)

// ClaimTask is a discount-code claim waiting to be persisted.
type ClaimTask struct {
	UserID     string
	DiscountID string
	Retry      int
}

// WorkerPool persists redis-approved claims to postgres asynchronously.
type WorkerPool struct {
	TaskQueue  chan ClaimTask
	RetryQueue chan ClaimTask
	Repo       repository.PromoRepository
	WorkerNum  int
	MaxRetry   int
}

func NewWorkerPool(repo repository.PromoRepository, workerNum int, bufferSize int) *WorkerPool {
	return &WorkerPool{
		TaskQueue:  make(chan ClaimTask, bufferSize),
		RetryQueue: make(chan ClaimTask, bufferSize/2),
		Repo:       repo,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

func (p *WorkerPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	log.Printf("Worker pool started with %d workers", p.WorkerNum)
}

func (p *WorkerPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.processTask(task); err != nil {
			log.Printf("[Worker %d] Failed to persist claim (UserID: %s, DiscountID: %s): %v",
				id, task.UserID, task.DiscountID, err)

			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
					log.Printf("[Worker %d] Claim added to retry queue (attempt %d/%d)",
						id, task.Retry, p.MaxRetry)
				default:
					log.Printf("[Worker %d] Retry queue full, claim dropped: %+v", id, task)
					p.logFailedTask(task, err)
				}
			} else {
				log.Printf("[Worker %d] Claim exceeded max retries, dropped: %+v", id, task)
				p.logFailedTask(task, err)
			}
		}
	}
}

func (p *WorkerPool) retryWorker() {
	for task := range p.RetryQueue {
		// Backs off linearly with the attempt count.
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
			log.Printf("[RetryWorker] Claim re-queued (attempt %d/%d)", task.Retry, p.MaxRetry)
		default:
			log.Printf("[RetryWorker] Main queue full, claim dropped: %+v", task)
			p.logFailedTask(task, nil)
		}
	}
}

func (p *WorkerPool) processTask(task ClaimTask) error {
	if err := p.Repo.DecreaseStock(task.DiscountID); err != nil {
		return err
	}

	userDiscount := &model.UserDiscount{
		UserID:     task.UserID,
		DiscountID: task.DiscountID,
		Status:     model.UserDiscountUnused,
	}

	return p.Repo.CreateUserDiscount(userDiscount)
}

func (p *WorkerPool) logFailedTask(task ClaimTask, err error) {
	// Redis already holds the claim; a dropped task here means stock in
	// postgres drifts until reconciled by hand.
	log.Printf("[DeadLetter] Claim failed permanently: UserID=%s, DiscountID=%s, Error=%v",
		task.UserID, task.DiscountID, err)
}

func (p *WorkerPool) AddTask(task ClaimTask) {
	select {
	case p.TaskQueue <- task:
	default:
		log.Printf("Worker pool queue full, dropping claim: %+v", task)
		p.logFailedTask(task, nil)
	}
}
