package hooks

type HookEvent string

const (
	BeforeTest HookEvent = "before.test"
	AfterTest  HookEvent = "after.test"
)
