package store

import "github.com/fastygo/taskboard/domain"

// ActionType enumerates the state transitions the store applies.
type ActionType int

const (
	ActionSetTasks ActionType = iota
	ActionAddTask
	ActionUpdateTask
	ActionDeleteTask
)

func (a ActionType) String() string {
	switch a {
	case ActionSetTasks:
		return "SET_TASKS"
	case ActionAddTask:
		return "ADD_TASK"
	case ActionUpdateTask:
		return "UPDATE_TASK"
	case ActionDeleteTask:
		return "DELETE_TASK"
	default:
		return "UNKNOWN"
	}
}

// Action is a single transition. Only the field matching Type is read.
type Action struct {
	Type  ActionType
	Tasks []domain.Task
	Task  domain.Task
	ID    string
}

func SetTasks(tasks []domain.Task) Action { return Action{Type: ActionSetTasks, Tasks: tasks} }
func AddTask(task domain.Task) Action     { return Action{Type: ActionAddTask, Task: task} }
func UpdateTask(task domain.Task) Action  { return Action{Type: ActionUpdateTask, Task: task} }
func DeleteTask(id string) Action         { return Action{Type: ActionDeleteTask, ID: id} }

// Reduce returns the task sequence after applying action. The input slice is never modified.
func Reduce(tasks []domain.Task, action Action) []domain.Task {
	switch action.Type {
	case ActionSetTasks:
		return clone(action.Tasks)
	case ActionAddTask:
		next := make([]domain.Task, 0, len(tasks)+1)
		next = append(next, tasks...)
		return append(next, action.Task)
	case ActionUpdateTask:
		next := clone(tasks)
		for i := range next {
			if next[i].ID == action.Task.ID {
				next[i] = action.Task
			}
		}
		return next
	case ActionDeleteTask:
		next := make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID != action.ID {
				next = append(next, t)
			}
		}
		return next
	default:
		return tasks
	}
}

func clone(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
