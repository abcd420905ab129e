package taskboardv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListProjectsRequest struct{}

type ListProjectsResponse struct {
	Projects []*Project `json:"projects"`
}

type GetProjectRequest struct {
	ID string `json:"id"`
}

type GetProjectResponse struct {
	Project *Project `json:"project"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateProjectResponse struct {
	Project *Project `json:"project"`
}

type UpdateProjectRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateProjectResponse struct {
	Project *Project `json:"project"`
}

type DeleteProjectRequest struct {
	ID string `json:"id"`
}

type DeleteProjectResponse struct{}

const (
	ProjectService_ListProjects_FullMethodName  = "/taskboard.v1.ProjectService/ListProjects"
	ProjectService_GetProject_FullMethodName    = "/taskboard.v1.ProjectService/GetProject"
	ProjectService_CreateProject_FullMethodName = "/taskboard.v1.ProjectService/CreateProject"
	ProjectService_UpdateProject_FullMethodName = "/taskboard.v1.ProjectService/UpdateProject"
	ProjectService_DeleteProject_FullMethodName = "/taskboard.v1.ProjectService/DeleteProject"
)

// ProjectServiceServer manages the caller's projects.
type ProjectServiceServer interface {
	ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error)
	GetProject(context.Context, *GetProjectRequest) (*GetProjectResponse, error)
	CreateProject(context.Context, *CreateProjectRequest) (*CreateProjectResponse, error)
	UpdateProject(context.Context, *UpdateProjectRequest) (*UpdateProjectResponse, error)
	DeleteProject(context.Context, *DeleteProjectRequest) (*DeleteProjectResponse, error)
}

// UnimplementedProjectServiceServer returns Unimplemented for every method.
type UnimplementedProjectServiceServer struct{}

func (UnimplementedProjectServiceServer) ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProjects not implemented")
}
func (UnimplementedProjectServiceServer) GetProject(context.Context, *GetProjectRequest) (*GetProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProject not implemented")
}
func (UnimplementedProjectServiceServer) CreateProject(context.Context, *CreateProjectRequest) (*CreateProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProject not implemented")
}
func (UnimplementedProjectServiceServer) UpdateProject(context.Context, *UpdateProjectRequest) (*UpdateProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProject not implemented")
}
func (UnimplementedProjectServiceServer) DeleteProject(context.Context, *DeleteProjectRequest) (*DeleteProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteProject not implemented")
}

// ProjectService_ServiceDesc is the grpc.ServiceDesc for ProjectService.
var ProjectService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "taskboard.v1.ProjectService",
	HandlerType: (*ProjectServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProjects", Handler: unaryHandler(ProjectService_ListProjects_FullMethodName, ProjectServiceServer.ListProjects)},
		{MethodName: "GetProject", Handler: unaryHandler(ProjectService_GetProject_FullMethodName, ProjectServiceServer.GetProject)},
		{MethodName: "CreateProject", Handler: unaryHandler(ProjectService_CreateProject_FullMethodName, ProjectServiceServer.CreateProject)},
		{MethodName: "UpdateProject", Handler: unaryHandler(ProjectService_UpdateProject_FullMethodName, ProjectServiceServer.UpdateProject)},
		{MethodName: "DeleteProject", Handler: unaryHandler(ProjectService_DeleteProject_FullMethodName, ProjectServiceServer.DeleteProject)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskboard/v1/project",
}

// RegisterProjectServiceServer registers srv with s.
func RegisterProjectServiceServer(s grpc.ServiceRegistrar, srv ProjectServiceServer) {
	s.RegisterService(&ProjectService_ServiceDesc, srv)
}

// ProjectServiceClient is the client API for ProjectService.
type ProjectServiceClient interface {
	ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error)
	GetProject(ctx context.Context, in *GetProjectRequest, opts ...grpc.CallOption) (*GetProjectResponse, error)
	CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*CreateProjectResponse, error)
	UpdateProject(ctx context.Context, in *UpdateProjectRequest, opts ...grpc.CallOption) (*UpdateProjectResponse, error)
	DeleteProject(ctx context.Context, in *DeleteProjectRequest, opts ...grpc.CallOption) (*DeleteProjectResponse, error)
}

type projectServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProjectServiceClient returns a client that calls ProjectService over cc with the JSON codec.
func NewProjectServiceClient(cc grpc.ClientConnInterface) ProjectServiceClient {
	return &projectServiceClient{cc: cc}
}

func (c *projectServiceClient) ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error) {
	return invoke[ListProjectsResponse](ctx, c.cc, ProjectService_ListProjects_FullMethodName, in, opts)
}

func (c *projectServiceClient) GetProject(ctx context.Context, in *GetProjectRequest, opts ...grpc.CallOption) (*GetProjectResponse, error) {
	return invoke[GetProjectResponse](ctx, c.cc, ProjectService_GetProject_FullMethodName, in, opts)
}

func (c *projectServiceClient) CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*CreateProjectResponse, error) {
	return invoke[CreateProjectResponse](ctx, c.cc, ProjectService_CreateProject_FullMethodName, in, opts)
}

func (c *projectServiceClient) UpdateProject(ctx context.Context, in *UpdateProjectRequest, opts ...grpc.CallOption) (*UpdateProjectResponse, error) {
	return invoke[UpdateProjectResponse](ctx, c.cc, ProjectService_UpdateProject_FullMethodName, in, opts)
}

func (c *projectServiceClient) DeleteProject(ctx context.Context, in *DeleteProjectRequest, opts ...grpc.CallOption) (*DeleteProjectResponse, error) {
	return invoke[DeleteProjectResponse](ctx, c.cc, ProjectService_DeleteProject_FullMethodName, in, opts)
}
