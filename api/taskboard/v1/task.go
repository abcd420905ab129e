package taskboardv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	RemindAt    *time.Time `json:"remindAt,omitempty"`
	Tags        []string   `json:"tags"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SearchTasksRequest filters the non-archived tasks of one project. Page is zero-based;
// Size 0 selects the default; Sort is "field[,ASC|DESC]".
type SearchTasksRequest struct {
	ProjectID string   `json:"projectId"`
	Keyword   string   `json:"keyword,omitempty"`
	Status    string   `json:"status,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Page      int      `json:"page"`
	Size      int      `json:"size"`
	Sort      string   `json:"sort,omitempty"`
}

type SearchTasksResponse struct {
	Tasks      []*Task `json:"tasks"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
	TotalPages int     `json:"totalPages"`
}

type GetTaskRequest struct {
	ID string `json:"id"`
}

type GetTaskResponse struct {
	Task *Task `json:"task"`
}

type CreateTaskRequest struct {
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	RemindAt    *time.Time `json:"remindAt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

type CreateTaskResponse struct {
	Task *Task `json:"task"`
}

// UpdateTaskRequest changes only the fields that are set. Tags, when set, replace the whole set.
type UpdateTaskRequest struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	RemindAt    *time.Time `json:"remindAt,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

type UpdateTaskResponse struct {
	Task *Task `json:"task"`
}

type ArchiveTaskRequest struct {
	ID string `json:"id"`
}

type ArchiveTaskResponse struct{}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}

const (
	TaskService_SearchTasks_FullMethodName = "/taskboard.v1.TaskService/SearchTasks"
	TaskService_GetTask_FullMethodName     = "/taskboard.v1.TaskService/GetTask"
	TaskService_CreateTask_FullMethodName  = "/taskboard.v1.TaskService/CreateTask"
	TaskService_UpdateTask_FullMethodName  = "/taskboard.v1.TaskService/UpdateTask"
	TaskService_ArchiveTask_FullMethodName = "/taskboard.v1.TaskService/ArchiveTask"
	TaskService_DeleteTask_FullMethodName  = "/taskboard.v1.TaskService/DeleteTask"
)

// TaskServiceServer searches and edits tasks in the caller's projects.
type TaskServiceServer interface {
	SearchTasks(context.Context, *SearchTasksRequest) (*SearchTasksResponse, error)
	GetTask(context.Context, *GetTaskRequest) (*GetTaskResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error)
	ArchiveTask(context.Context, *ArchiveTaskRequest) (*ArchiveTaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
}

// UnimplementedTaskServiceServer returns Unimplemented for every method.
type UnimplementedTaskServiceServer struct{}

func (UnimplementedTaskServiceServer) SearchTasks(context.Context, *SearchTasksRequest) (*SearchTasksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SearchTasks not implemented")
}
func (UnimplementedTaskServiceServer) GetTask(context.Context, *GetTaskRequest) (*GetTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTask not implemented")
}
func (UnimplementedTaskServiceServer) CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTask not implemented")
}
func (UnimplementedTaskServiceServer) UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateTask not implemented")
}
func (UnimplementedTaskServiceServer) ArchiveTask(context.Context, *ArchiveTaskRequest) (*ArchiveTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ArchiveTask not implemented")
}
func (UnimplementedTaskServiceServer) DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteTask not implemented")
}

// TaskService_ServiceDesc is the grpc.ServiceDesc for TaskService.
var TaskService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "taskboard.v1.TaskService",
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchTasks", Handler: unaryHandler(TaskService_SearchTasks_FullMethodName, TaskServiceServer.SearchTasks)},
		{MethodName: "GetTask", Handler: unaryHandler(TaskService_GetTask_FullMethodName, TaskServiceServer.GetTask)},
		{MethodName: "CreateTask", Handler: unaryHandler(TaskService_CreateTask_FullMethodName, TaskServiceServer.CreateTask)},
		{MethodName: "UpdateTask", Handler: unaryHandler(TaskService_UpdateTask_FullMethodName, TaskServiceServer.UpdateTask)},
		{MethodName: "ArchiveTask", Handler: unaryHandler(TaskService_ArchiveTask_FullMethodName, TaskServiceServer.ArchiveTask)},
		{MethodName: "DeleteTask", Handler: unaryHandler(TaskService_DeleteTask_FullMethodName, TaskServiceServer.DeleteTask)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskboard/v1/task",
}

// RegisterTaskServiceServer registers srv with s.
func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&TaskService_ServiceDesc, srv)
}

// TaskServiceClient is the client API for TaskService.
type TaskServiceClient interface {
	SearchTasks(ctx context.Context, in *SearchTasksRequest, opts ...grpc.CallOption) (*SearchTasksResponse, error)
	GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*GetTaskResponse, error)
	CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error)
	UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error)
	ArchiveTask(ctx context.Context, in *ArchiveTaskRequest, opts ...grpc.CallOption) (*ArchiveTaskResponse, error)
	DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error)
}

type taskServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTaskServiceClient returns a client that calls TaskService over cc with the JSON codec.
func NewTaskServiceClient(cc grpc.ClientConnInterface) TaskServiceClient {
	return &taskServiceClient{cc: cc}
}

func (c *taskServiceClient) SearchTasks(ctx context.Context, in *SearchTasksRequest, opts ...grpc.CallOption) (*SearchTasksResponse, error) {
	return invoke[SearchTasksResponse](ctx, c.cc, TaskService_SearchTasks_FullMethodName, in, opts)
}

func (c *taskServiceClient) GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*GetTaskResponse, error) {
	return invoke[GetTaskResponse](ctx, c.cc, TaskService_GetTask_FullMethodName, in, opts)
}

func (c *taskServiceClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error) {
	return invoke[CreateTaskResponse](ctx, c.cc, TaskService_CreateTask_FullMethodName, in, opts)
}

func (c *taskServiceClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error) {
	return invoke[UpdateTaskResponse](ctx, c.cc, TaskService_UpdateTask_FullMethodName, in, opts)
}

func (c *taskServiceClient) ArchiveTask(ctx context.Context, in *ArchiveTaskRequest, opts ...grpc.CallOption) (*ArchiveTaskResponse, error) {
	return invoke[ArchiveTaskResponse](ctx, c.cc, TaskService_ArchiveTask_FullMethodName, in, opts)
}

func (c *taskServiceClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskResponse](ctx, c.cc, TaskService_DeleteTask_FullMethodName, in, opts)
}
