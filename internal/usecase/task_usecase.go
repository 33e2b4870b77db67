package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AssignedTo  uint    `json:"assigned_to"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *uint   `json:"assigned_to"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type TaskUsecase struct {
	repo      repository.TaskRepository
	employees repository.EmployeeRepository
	policy    *access.Policy
	events    fanout.Publisher
	now       func() time.Time
}

func NewTaskUsecase(
	repo repository.TaskRepository,
	employees repository.EmployeeRepository,
	policy *access.Policy,
	events fanout.Publisher,
) *TaskUsecase {
	return &TaskUsecase{repo: repo, employees: employees, policy: policy, events: events, now: time.Now}
}

func (u *TaskUsecase) Create(ctx context.Context, caller *access.Caller, in CreateTaskInput) (*model.Task, error) {
	if err := u.policy.Authorize(caller, access.TaskManage, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, model.ErrValidation("title is required")
	}
	if in.AssignedTo == 0 {
		return nil, model.ErrValidation("assigned_to is required")
	}
	priority := model.PriorityMedium
	if in.Priority != "" {
		priority = model.TaskPriority(in.Priority)
		if !priority.Valid() {
			return nil, model.ErrValidation(fmt.Sprintf("unknown priority '%s'", in.Priority))
		}
	}
	due, err := dueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	assignee, err := u.employees.FindByID(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		AssignedTo:  assignee.ID,
		AssignedBy:  caller.UserID,
		Priority:    priority,
		Status:      model.TaskPending,
		DueDate:     due,
	}
	if err = u.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	task.Assignee = assignee
	u.publish(ctx, fanout.TaskAssigned, caller, task, "")
	return task, nil
}

func (u *TaskUsecase) Get(ctx context.Context, caller *access.Caller, id uint) (*model.Task, error) {
	if _, err := u.policy.Scope(caller, access.TaskView); err != nil {
		return nil, err
	}
	task, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.policy.Authorize(caller, access.TaskView, &task.AssignedTo); err != nil {
		return nil, err
	}
	return task, nil
}

// Update edits task fields. Reassignment notifies the new assignee.
func (u *TaskUsecase) Update(ctx context.Context, caller *access.Caller, id uint, patch TaskPatch) (*model.Task, error) {
	if err := u.policy.Authorize(caller, access.TaskManage, nil); err != nil {
		return nil, err
	}
	task, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, model.ErrValidation("title must not be empty")
		}
		fields["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Priority != nil {
		if !model.TaskPriority(*patch.Priority).Valid() {
			return nil, model.ErrValidation(fmt.Sprintf("unknown priority '%s'", *patch.Priority))
		}
		fields["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		due, err := dueDate(patch.DueDate)
		if err != nil {
			return nil, err
		}
		fields["due_date"] = due
	}
	reassigned := false
	if patch.AssignedTo != nil && *patch.AssignedTo != task.AssignedTo {
		if _, err = u.employees.FindByID(ctx, *patch.AssignedTo); err != nil {
			return nil, err
		}
		fields["assigned_to"] = *patch.AssignedTo
		reassigned = true
	}
	if len(fields) == 0 {
		return task, nil
	}

	if err = u.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	if task, err = u.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	kind := fanout.TaskUpdated
	if reassigned {
		kind = fanout.TaskAssigned
	}
	u.publish(ctx, kind, caller, task, "")
	return task, nil
}

// UpdateStatus moves a task. completed_at follows the completed state.
func (u *TaskUsecase) UpdateStatus(ctx context.Context, caller *access.Caller, id uint, status string) (*model.Task, error) {
	if _, err := u.policy.Scope(caller, access.TaskStatus); err != nil {
		return nil, err
	}
	task, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.policy.Authorize(caller, access.TaskStatus, &task.AssignedTo); err != nil {
		return nil, err
	}
	next := model.TaskStatus(status)
	if !next.Valid() {
		return nil, model.ErrValidation(fmt.Sprintf("unknown status '%s'", status))
	}
	previous := task.Status
	if next == previous {
		return task, nil
	}

	fields := map[string]any{"status": next}
	switch {
	case next == model.TaskCompleted:
		fields["completed_at"] = u.now()
	case previous == model.TaskCompleted:
		fields["completed_at"] = nil
	}
	if err = u.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	if task, err = u.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	kind := fanout.TaskStatusChanged
	if next == model.TaskCompleted {
		kind = fanout.TaskCompleted
	}
	u.publish(ctx, kind, caller, task, string(previous))
	return task, nil
}

func (u *TaskUsecase) Delete(ctx context.Context, caller *access.Caller, id uint) error {
	if err := u.policy.Authorize(caller, access.TaskManage, nil); err != nil {
		return err
	}
	task, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err = u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.publish(ctx, fanout.TaskDeleted, caller, task, string(task.Status))
	return nil
}

// List returns tasks. Employees only see tasks assigned to them.
func (u *TaskUsecase) List(ctx context.Context, caller *access.Caller, f repository.TaskFilter) ([]model.Task, int64, error) {
	scope, err := u.policy.Scope(caller, access.TaskView)
	if err != nil {
		return nil, 0, err
	}
	if scope == access.ScopeSelf {
		if caller.EmployeeID == nil {
			return nil, 0, model.ErrForbidden("no employee record is linked to this account")
		}
		own := *caller.EmployeeID
		f.AssignedTo = &own
	}
	if f.Status != "" && !model.TaskStatus(f.Status).Valid() {
		return nil, 0, model.ErrValidation(fmt.Sprintf("unknown status '%s'", f.Status))
	}
	if f.Priority != "" && !model.TaskPriority(f.Priority).Valid() {
		return nil, 0, model.ErrValidation(fmt.Sprintf("unknown priority '%s'", f.Priority))
	}
	return u.repo.List(ctx, f)
}

func dueDate(v *string) (*string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	d, err := parseDate("due_date", *v)
	if err != nil {
		return nil, err
	}
	s := d.Format(dateLayout)
	return &s, nil
}

func (u *TaskUsecase) publish(ctx context.Context, kind fanout.Kind, caller *access.Caller, task *model.Task, previous string) {
	ev := fanout.NewEvent(kind, caller, u.now())
	ev.Task = task
	ev.Employee = task.Assignee
	ev.Previous = previous
	u.events.Publish(ctx, ev)
}
