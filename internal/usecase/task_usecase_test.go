package usecase

import (
	"testing"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

func (f *fixture) createTask(t *testing.T) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(f.ctx, f.hr, CreateTaskInput{
		Title:      "Prepare report",
		AssignedTo: f.e1Emp.ID,
		Priority:   "high",
		DueDate:    strPtr("2024-03-10"),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	f := newFixture(t)
	task := f.createTask(t)

	if task.Status != model.TaskPending || task.AssignedBy != f.hr.UserID || task.Priority != model.PriorityHigh {
		t.Fatalf("unexpected task %+v", task)
	}
	if n := f.count(t, &model.Notification{}, "user_id = ? AND related_type = ? AND related_id = ?", f.e1.UserID, "task", task.ID); n != 1 {
		t.Fatalf("expected one notification for the assignee, got %d", n)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.Create(f.ctx, f.e1, CreateTaskInput{Title: "x", AssignedTo: f.e1Emp.ID})
	expectKind(t, err, model.KindForbidden)
	_, err = f.tasks.Create(f.ctx, f.admin, CreateTaskInput{AssignedTo: f.e1Emp.ID})
	expectKind(t, err, model.KindValidation)
	_, err = f.tasks.Create(f.ctx, f.admin, CreateTaskInput{Title: "x", AssignedTo: f.e1Emp.ID, Priority: "someday"})
	expectKind(t, err, model.KindValidation)
	_, err = f.tasks.Create(f.ctx, f.admin, CreateTaskInput{Title: "x", AssignedTo: 999})
	expectKind(t, err, model.KindNotFound)
}

func TestTaskStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	f.at(12, 0)
	task := f.createTask(t)

	_, err := f.tasks.UpdateStatus(f.ctx, f.e2, task.ID, "in_progress")
	expectKind(t, err, model.KindForbidden)
	_, err = f.tasks.UpdateStatus(f.ctx, f.e1, task.ID, "blocked")
	expectKind(t, err, model.KindValidation)

	done, err := f.tasks.UpdateStatus(f.ctx, f.e1, task.ID, "completed")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.TaskCompleted || done.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %+v", done)
	}
	if n := f.count(t, &model.Notification{}, "user_id = ? AND title = ?", f.hr.UserID, "Task Completed"); n != 1 {
		t.Fatalf("expected the assigner to be notified, got %d", n)
	}

	reopened, err := f.tasks.UpdateStatus(f.ctx, f.hr, task.ID, "in_progress")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Fatalf("completed_at must be cleared, got %v", reopened.CompletedAt)
	}
}

func TestTaskVisibility(t *testing.T) {
	f := newFixture(t)
	task := f.createTask(t)

	if _, err := f.tasks.Get(f.ctx, f.e1, task.ID); err != nil {
		t.Fatalf("assignee get: %v", err)
	}
	_, err := f.tasks.Get(f.ctx, f.e2, task.ID)
	expectKind(t, err, model.KindForbidden)

	_, count, err := f.tasks.List(f.ctx, f.e2, repository.TaskFilter{})
	if err != nil || count != 0 {
		t.Fatalf("e2 should see no tasks, got %d (%v)", count, err)
	}
	_, count, _ = f.tasks.List(f.ctx, f.admin, repository.TaskFilter{})
	if count != 1 {
		t.Fatalf("admin should see the task, got %d", count)
	}
}

func TestUpdateAndDeleteTask(t *testing.T) {
	f := newFixture(t)
	task := f.createTask(t)

	_, err := f.tasks.Update(f.ctx, f.e1, task.ID, TaskPatch{Title: strPtr("mine")})
	expectKind(t, err, model.KindForbidden)

	reassigned, err := f.tasks.Update(f.ctx, f.admin, task.ID, TaskPatch{AssignedTo: &f.e2Emp.ID, Priority: strPtr("urgent")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if reassigned.AssignedTo != f.e2Emp.ID || reassigned.Priority != model.PriorityUrgent {
		t.Fatalf("unexpected task %+v", reassigned)
	}
	if n := f.count(t, &model.Notification{}, "user_id = ? AND related_id = ?", f.e2.UserID, task.ID); n != 1 {
		t.Fatalf("new assignee should be notified, got %d", n)
	}

	if err = f.tasks.Delete(f.ctx, f.admin, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = f.tasks.Get(f.ctx, f.admin, task.ID)
	expectKind(t, err, model.KindNotFound)
}
