package model

type TaskStatus string

const (
	TaskStatusNew          TaskStatus = "new"
	TaskStatusInWork       TaskStatus = "in_work"
	TaskStatusReadyCollect TaskStatus = "ready_collect"
	TaskStatusCollected    TaskStatus = "collected"
)

type Task struct {
	ID          Text       `json:"id"`
	Description string     `json:"description"`
	Price       Text       `json:"price"`
	Status      TaskStatus `json:"status"`
}
