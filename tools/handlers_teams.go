package tools

import (
	"context"

	"apigee-gateway/teams"
)

func (d *Dispatcher) registerTeamTools() {
	d.register(Tool{
		Name:        "list-teams",
		Description: "List the teams managed by the gateway",
	}, func(ctx context.Context, _ Arguments) (any, string, error) {
		list, err := d.teams.List(ctx)
		if err != nil {
			return nil, "", err
		}
		return map[string]any{"teams": list}, "", nil
	})

	d.register(Tool{
		Name:        "get-team",
		Description: "Fetch one team by ID",
		Parameters: []Parameter{
			required("team_id", "string", "Team ID"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		id, err := args.String("team_id")
		if err != nil {
			return nil, "", err
		}
		team, err := d.teams.Get(ctx, id)
		return any(team), "", err
	})

	d.register(Tool{
		Name:        "create-team",
		Description: "Create a team",
		Parameters: []Parameter{
			required("name", "string", "Team name, 1-100 characters of letters, digits, spaces, hyphens and underscores"),
			param("description", "string", "Team description, up to 500 characters"),
			param("members", "array", "Member emails, up to 100"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		name, err := args.String("name")
		if err != nil {
			return nil, "", err
		}
		description, err := args.OptionalString("description", "")
		if err != nil {
			return nil, "", err
		}
		members, err := args.StringSlice("members")
		if err != nil {
			return nil, "", err
		}
		team, err := d.teams.Create(ctx, teams.CreateTeam{
			Name:        name,
			Description: description,
			Members:     members,
		})
		return any(team), "", err
	})

	d.register(Tool{
		Name:        "update-team",
		Description: "Update a team; omitted fields are left unchanged",
		Parameters: []Parameter{
			required("team_id", "string", "Team ID"),
			param("description", "string", "Replacement description"),
			param("members", "array", "Replacement member list"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		id, err := args.String("team_id")
		if err != nil {
			return nil, "", err
		}
		var update teams.UpdateTeam
		if _, ok := args["description"]; ok {
			description, err := args.OptionalString("description", "")
			if err != nil {
				return nil, "", err
			}
			update.Description = &description
		}
		if _, ok := args["members"]; ok {
			members, err := args.StringSlice("members")
			if err != nil {
				return nil, "", err
			}
			if members == nil {
				members = []string{}
			}
			update.Members = &members
		}
		team, err := d.teams.Update(ctx, id, update)
		return any(team), "", err
	})

	d.register(Tool{
		Name:        "delete-team",
		Description: "Delete a team by ID",
		Parameters: []Parameter{
			required("team_id", "string", "Team ID"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		id, err := args.String("team_id")
		if err != nil {
			return nil, "", err
		}
		if err := d.teams.Delete(ctx, id); err != nil {
			return nil, "", err
		}
		return map[string]any{"deleted": true, "team_id": id}, "", nil
	})
}
