package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	SearchStateAll      = "ALL"
	SearchStateCurrent  = "CURRENT"
	SearchStatePast     = "PAST"
	SearchStateFuture   = "FUTURE"
	SearchStateWaiting  = "WAITING"
	SearchStateRejected = "REJECTED"
)

const (
	// DefaultPageSize размер страницы списков по умолчанию
	DefaultPageSize = 15

	// SearchCacheTTL время жизни кэша результатов поиска вещей
	SearchCacheTTL = 5 * 60 // 5 минут в секундах

	// RateLimitRPS запросов в секунду на клиента по умолчанию
	RateLimitRPS = 10

	// RateLimitBurst всплеск запросов на клиента по умолчанию
	RateLimitBurst = 20

	// WorkerQueueSize размер очереди воркера синхронизации
	WorkerQueueSize = 128
)
