package handler

type ContextKey string

var (
	RoleCtxKey         ContextKey = "role"
	SubCtxKey          ContextKey = "sub"
	MyInfoCtx          ContextKey = "myInfo"
	CoordinatorInfoCtx ContextKey = "coordinatorInfo"
	WorkerInfoCtx      ContextKey = "workerInfo"
)
