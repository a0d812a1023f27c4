package tools

import (
	"context"

	"github.com/google/uuid"

	"apigee-gateway/apigee"
)

func (d *Dispatcher) registerApigeeTools() {
	d.register(Tool{
		Name:        "list-organizations",
		Description: "List the Apigee organizations visible to the configured credentials",
	}, func(ctx context.Context, _ Arguments) (any, string, error) {
		return res(d.client.ListOrganizations(ctx))
	})

	d.register(Tool{
		Name:        "get-organization",
		Description: "Fetch one Apigee organization",
		Parameters:  []Parameter{orgParam},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetOrganization(ctx, org))
	})

	d.register(Tool{
		Name:        "list-environments",
		Description: "List the environments in an organization",
		Parameters:  []Parameter{orgParam},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListEnvironments(ctx, org))
	})

	d.register(Tool{
		Name:        "get-environment",
		Description: "Fetch one environment",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetEnvironment(ctx, org, env))
	})

	d.register(Tool{
		Name:        "create-environment",
		Description: "Create an environment in an organization",
		Parameters: []Parameter{
			orgParam,
			required("name", "string", "Environment name"),
			param("display_name", "string", "Display name; defaults to the environment name"),
			param("description", "string", "Environment description"),
			param("env_type", "string", "Deployment type, PRODUCTION or NON_PRODUCTION"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		name, err := args.String("name")
		if err != nil {
			return nil, "", err
		}
		displayName, err := args.OptionalString("display_name", "")
		if err != nil {
			return nil, "", err
		}
		description, err := args.OptionalString("description", "")
		if err != nil {
			return nil, "", err
		}
		envType, err := args.OptionalString("env_type", "")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.CreateEnvironment(ctx, org, apigee.Environment{
			Name:        name,
			DisplayName: displayName,
			Description: description,
			Type:        envType,
		}))
	})

	d.register(Tool{
		Name:        "list-api-proxies",
		Description: "List the API proxies in an organization",
		Parameters: []Parameter{
			orgParam,
			param("include_revisions", "boolean", "Include revision metadata per proxy"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		includeRevisions, err := args.Bool("include_revisions")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListProxies(ctx, org, includeRevisions))
	})

	d.register(Tool{
		Name:        "get-api-proxy",
		Description: "Fetch one API proxy",
		Parameters: []Parameter{
			orgParam,
			required("proxy_name", "string", "API proxy name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		proxy, err := args.String("proxy_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetProxy(ctx, org, proxy))
	})

	d.register(Tool{
		Name:        "get-api-proxy-revision",
		Description: "Fetch one revision of an API proxy",
		Parameters: []Parameter{
			orgParam,
			required("proxy_name", "string", "API proxy name"),
			required("revision", "string", "Revision number"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		proxy, err := args.String("proxy_name")
		if err != nil {
			return nil, "", err
		}
		revision, err := args.String("revision")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetProxyRevision(ctx, org, proxy, revision))
	})

	d.register(Tool{
		Name:        "deploy-api-proxy",
		Description: "Deploy a revision of an API proxy to an environment",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Target environment"),
			required("proxy_name", "string", "API proxy name"),
			required("revision", "string", "Revision number"),
			param("override", "boolean", "Replace the currently deployed revision without waiting for undeploy"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		proxy, err := args.String("proxy_name")
		if err != nil {
			return nil, "", err
		}
		revision, err := args.String("revision")
		if err != nil {
			return nil, "", err
		}
		override, err := args.Bool("override")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.DeployProxy(ctx, org, env, proxy, revision, override))
	})

	d.register(Tool{
		Name:        "undeploy-api-proxy",
		Description: "Undeploy a revision of an API proxy from an environment",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Target environment"),
			required("proxy_name", "string", "API proxy name"),
			required("revision", "string", "Revision number"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		proxy, err := args.String("proxy_name")
		if err != nil {
			return nil, "", err
		}
		revision, err := args.String("revision")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.UndeployProxy(ctx, org, env, proxy, revision))
	})

	d.register(Tool{
		Name:        "list-developers",
		Description: "List the developers in an organization",
		Parameters: []Parameter{
			orgParam,
			param("expand", "boolean", "Return full developer records instead of emails"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		expand, err := args.Bool("expand")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListDevelopers(ctx, org, expand))
	})

	d.register(Tool{
		Name:        "get-developer",
		Description: "Fetch one developer by email or ID",
		Parameters: []Parameter{
			orgParam,
			required("developer_email", "string", "Developer email or ID"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		developer, err := args.String("developer_email")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetDeveloper(ctx, org, developer))
	})

	d.register(Tool{
		Name:        "create-developer",
		Description: "Register a developer in an organization",
		Parameters: []Parameter{
			orgParam,
			required("email", "string", "Developer email"),
			required("first_name", "string", "First name"),
			required("last_name", "string", "Last name"),
			param("user_name", "string", "Username; defaults to the local part of the email"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		email, err := args.String("email")
		if err != nil {
			return nil, "", err
		}
		firstName, err := args.String("first_name")
		if err != nil {
			return nil, "", err
		}
		lastName, err := args.String("last_name")
		if err != nil {
			return nil, "", err
		}
		userName, err := args.OptionalString("user_name", "")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.CreateDeveloper(ctx, org, apigee.Developer{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			UserName:  userName,
		}))
	})

	d.register(Tool{
		Name:        "list-developer-apps",
		Description: "List a developer's apps",
		Parameters: []Parameter{
			orgParam,
			required("developer_email", "string", "Developer email or ID"),
			param("expand", "boolean", "Return full app records instead of names"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		developer, err := args.String("developer_email")
		if err != nil {
			return nil, "", err
		}
		expand, err := args.Bool("expand")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListDeveloperApps(ctx, org, developer, expand))
	})

	d.register(Tool{
		Name:        "get-developer-app",
		Description: "Fetch one developer app",
		Parameters: []Parameter{
			orgParam,
			required("developer_email", "string", "Developer email or ID"),
			required("app_name", "string", "App name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		developer, err := args.String("developer_email")
		if err != nil {
			return nil, "", err
		}
		app, err := args.String("app_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetDeveloperApp(ctx, org, developer, app))
	})

	d.register(Tool{
		Name:        "create-developer-app",
		Description: "Create an app for a developer",
		Parameters: []Parameter{
			orgParam,
			required("developer_email", "string", "Developer email or ID"),
			required("app_name", "string", "App name"),
			param("api_products", "array", "API products to grant the app"),
			param("callback_url", "string", "OAuth callback URL"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		developer, err := args.String("developer_email")
		if err != nil {
			return nil, "", err
		}
		name, err := args.String("app_name")
		if err != nil {
			return nil, "", err
		}
		products, err := args.StringSlice("api_products")
		if err != nil {
			return nil, "", err
		}
		callbackURL, err := args.OptionalString("callback_url", "")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.CreateDeveloperApp(ctx, org, developer, apigee.DeveloperApp{
			Name:        name,
			APIProducts: products,
			CallbackURL: callbackURL,
		}))
	})

	d.register(Tool{
		Name:        "list-api-products",
		Description: "List the API products in an organization",
		Parameters: []Parameter{
			orgParam,
			param("expand", "boolean", "Return full product records instead of names"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		expand, err := args.Bool("expand")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListProducts(ctx, org, expand))
	})

	d.register(Tool{
		Name:        "get-api-product",
		Description: "Fetch one API product",
		Parameters: []Parameter{
			orgParam,
			required("product_name", "string", "API product name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		product, err := args.String("product_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetProduct(ctx, org, product))
	})

	d.register(Tool{
		Name:        "create-api-product",
		Description: "Create an API product",
		Parameters: []Parameter{
			orgParam,
			required("name", "string", "API product name"),
			param("display_name", "string", "Display name; defaults to the product name"),
			param("description", "string", "Product description"),
			param("approval_type", "string", "Key approval type, auto or manual"),
			param("proxies", "array", "API proxies bundled into the product"),
			param("environments", "array", "Environments the product is served from"),
			param("api_resources", "array", "URI paths exposed by the product"),
			param("quota", "string", "Request quota, e.g. \"1000\""),
			param("quota_interval", "string", "Quota interval; defaults to 1 when a quota is set"),
			param("quota_time_unit", "string", "Quota time unit; defaults to day when a quota is set"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		name, err := args.String("name")
		if err != nil {
			return nil, "", err
		}
		displayName, err := args.OptionalString("display_name", "")
		if err != nil {
			return nil, "", err
		}
		description, err := args.OptionalString("description", "")
		if err != nil {
			return nil, "", err
		}
		approvalType, err := args.OptionalString("approval_type", "")
		if err != nil {
			return nil, "", err
		}
		proxies, err := args.StringSlice("proxies")
		if err != nil {
			return nil, "", err
		}
		environments, err := args.StringSlice("environments")
		if err != nil {
			return nil, "", err
		}
		apiResources, err := args.StringSlice("api_resources")
		if err != nil {
			return nil, "", err
		}
		quota, err := args.OptionalString("quota", "")
		if err != nil {
			return nil, "", err
		}
		quotaInterval, err := args.OptionalString("quota_interval", "")
		if err != nil {
			return nil, "", err
		}
		quotaTimeUnit, err := args.OptionalString("quota_time_unit", "")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.CreateProduct(ctx, org, apigee.APIProduct{
			Name:          name,
			DisplayName:   displayName,
			Description:   description,
			ApprovalType:  approvalType,
			Proxies:       proxies,
			Environments:  environments,
			APIResources:  apiResources,
			Quota:         quota,
			QuotaInterval: quotaInterval,
			QuotaTimeUnit: quotaTimeUnit,
		}))
	})

	d.register(Tool{
		Name:        "list-shared-flows",
		Description: "List the shared flows in an organization",
		Parameters: []Parameter{
			orgParam,
			param("include_revisions", "boolean", "Include revision metadata per shared flow"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		includeRevisions, err := args.Bool("include_revisions")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListSharedFlows(ctx, org, includeRevisions))
	})

	d.register(Tool{
		Name:        "get-shared-flow",
		Description: "Fetch one shared flow",
		Parameters: []Parameter{
			orgParam,
			required("shared_flow_name", "string", "Shared flow name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		sharedFlow, err := args.String("shared_flow_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetSharedFlow(ctx, org, sharedFlow))
	})

	d.register(Tool{
		Name:        "deploy-shared-flow",
		Description: "Deploy a revision of a shared flow to an environment",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Target environment"),
			required("shared_flow_name", "string", "Shared flow name"),
			required("revision", "string", "Revision number"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		sharedFlow, err := args.String("shared_flow_name")
		if err != nil {
			return nil, "", err
		}
		revision, err := args.String("revision")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.DeploySharedFlow(ctx, org, env, sharedFlow, revision))
	})

	d.register(Tool{
		Name:        "list-keystores",
		Description: "List the keystores in an environment",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListKeystores(ctx, org, env))
	})

	d.register(Tool{
		Name:        "get-keystore",
		Description: "Fetch one keystore",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
			required("keystore_name", "string", "Keystore name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		keystore, err := args.String("keystore_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetKeystore(ctx, org, env, keystore))
	})

	d.register(Tool{
		Name:        "list-keystore-aliases",
		Description: "List the aliases in a keystore",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
			required("keystore_name", "string", "Keystore name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		keystore, err := args.String("keystore_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListKeystoreAliases(ctx, org, env, keystore))
	})

	d.register(Tool{
		Name:        "get-keystore-alias",
		Description: "Fetch one keystore alias",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
			required("keystore_name", "string", "Keystore name"),
			required("alias_name", "string", "Alias name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		keystore, err := args.String("keystore_name")
		if err != nil {
			return nil, "", err
		}
		alias, err := args.String("alias_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetKeystoreAlias(ctx, org, env, keystore, alias))
	})

	d.register(Tool{
		Name:        "list-companies",
		Description: "List the companies in an organization",
		Parameters: []Parameter{
			orgParam,
			param("expand", "boolean", "Return full company records instead of names"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		expand, err := args.Bool("expand")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.ListCompanies(ctx, org, expand))
	})

	d.register(Tool{
		Name:        "get-company",
		Description: "Fetch one company",
		Parameters: []Parameter{
			orgParam,
			required("company_name", "string", "Company name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		company, err := args.String("company_name")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetCompany(ctx, org, company))
	})

	d.register(Tool{
		Name:        "create-company",
		Description: "Create a company in an organization",
		Parameters: []Parameter{
			orgParam,
			required("name", "string", "Company name"),
			param("display_name", "string", "Display name"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		name, err := args.String("name")
		if err != nil {
			return nil, "", err
		}
		displayName, err := args.OptionalString("display_name", "")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.CreateCompany(ctx, org, apigee.Company{
			Name:        name,
			DisplayName: displayName,
		}))
	})

	d.register(Tool{
		Name:        "create-debug-session",
		Description: "Start a debug session on a deployed API proxy revision",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
			required("proxy_name", "string", "API proxy name"),
			required("revision", "string", "Revision number"),
			param("session_id", "string", "Session identifier; generated when omitted"),
			param("timeout", "integer", "Session lifetime in seconds, default 600"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		proxy, err := args.String("proxy_name")
		if err != nil {
			return nil, "", err
		}
		revision, err := args.String("revision")
		if err != nil {
			return nil, "", err
		}
		session, err := args.OptionalString("session_id", "")
		if err != nil {
			return nil, "", err
		}
		if session == "" {
			session = uuid.NewString()
		}
		timeout, err := args.Int("timeout", 0)
		if err != nil {
			return nil, "", err
		}
		return res(d.client.CreateDebugSession(ctx, org, env, proxy, revision, session, timeout))
	})

	d.register(Tool{
		Name:        "get-debug-session-data",
		Description: "Fetch the transaction data captured by a debug session",
		Parameters: []Parameter{
			orgParam,
			required("environment", "string", "Environment name"),
			required("proxy_name", "string", "API proxy name"),
			required("revision", "string", "Revision number"),
			required("session_id", "string", "Session identifier"),
		},
	}, func(ctx context.Context, args Arguments) (any, string, error) {
		org, err := d.org(args)
		if err != nil {
			return nil, "", err
		}
		env, err := args.String("environment")
		if err != nil {
			return nil, "", err
		}
		proxy, err := args.String("proxy_name")
		if err != nil {
			return nil, "", err
		}
		revision, err := args.String("revision")
		if err != nil {
			return nil, "", err
		}
		session, err := args.String("session_id")
		if err != nil {
			return nil, "", err
		}
		return res(d.client.GetDebugSessionData(ctx, org, env, proxy, revision, session))
	})
}

// res narrows the client's three-value returns to the handler shape.
func res(data map[string]any, corrID string, err error) (any, string, error) {
	if err != nil {
		return nil, corrID, err
	}
	return data, corrID, nil
}
