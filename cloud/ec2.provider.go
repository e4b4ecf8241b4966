package cloud

import (
	"context"
	"encoding/base64"
	"nimbusBackend/config"
	"nimbusBackend/utils"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/charmbracelet/log"
)

type Ec2Provider struct {
	client *ec2.EC2
}

func CreateEc2Provider(config *config.NimbusConfig) (*Ec2Provider, error) {
	accessKeyId := os.Getenv("NB_AWS_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("NB_AWS_SECRET_ACCESS_KEY")

	if accessKeyId == "" || secretAccessKey == "" {
		log.Warn("AWS credentials are empty. EC2 calls will fail.")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(config.Aws.Region),
		Credentials: credentials.NewStaticCredentials(accessKeyId, secretAccessKey, ""),
	})
	if err != nil {
		return nil, err
	}

	return &Ec2Provider{client: ec2.New(sess)}, nil
}

func (p *Ec2Provider) Create(ctx context.Context, spec InstanceSpec) (*InstanceDetails, error) {
	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(spec.Ami),
		InstanceType: aws.String(spec.InstanceType),
		MinCount:     aws.Int64(1),
		MaxCount:     aws.Int64(1),
		BlockDeviceMappings: []*ec2.BlockDeviceMapping{{
			DeviceName: aws.String("/dev/sda1"),
			Ebs: &ec2.EbsBlockDevice{
				VolumeSize:          aws.Int64(int64(spec.VolumeSize)),
				VolumeType:          aws.String("gp3"),
				DeleteOnTermination: aws.Bool(true),
			},
		}},
		TagSpecifications: []*ec2.TagSpecification{{
			ResourceType: aws.String(ec2.ResourceTypeInstance),
			Tags:         toEc2Tags(spec.Tags),
		}},
	}

	if spec.Keypair != "" {
		input.KeyName = aws.String(spec.Keypair)
	}
	if spec.SubnetId != "" {
		input.SubnetId = aws.String(spec.SubnetId)
	}
	if spec.UserData != "" {
		input.UserData = aws.String(base64.StdEncoding.EncodeToString([]byte(spec.UserData)))
	}

	reservation, err := p.client.RunInstancesWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(reservation.Instances) < 1 {
		return nil, utils.ErrorUpstreamFailure
	}

	return toDetails(reservation.Instances[0]), nil
}

func (p *Ec2Provider) Reboot(ctx context.Context, name string) (*InstanceDetails, error) {
	instance, err := p.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	_, err = p.client.RebootInstancesWithContext(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []*string{instance.InstanceId},
	})
	if err != nil {
		return nil, err
	}

	return toDetails(instance), nil
}

func (p *Ec2Provider) Terminate(ctx context.Context, name string) (*InstanceDetails, error) {
	instance, err := p.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	_, err = p.client.TerminateInstancesWithContext(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []*string{instance.InstanceId},
	})
	if err != nil {
		return nil, err
	}

	details := toDetails(instance)
	details.State = StateTerminated

	return details, nil
}

func (p *Ec2Provider) Describe(ctx context.Context, name string) (*InstanceDetails, error) {
	instance, err := p.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return toDetails(instance), nil
}

func (p *Ec2Provider) List(ctx context.Context) ([]InstanceDetails, error) {
	output, err := p.client.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{
		Filters: []*ec2.Filter{{
			Name:   aws.String("instance-state-name"),
			Values: aws.StringSlice([]string{"pending", "running", "stopping", "stopped"}),
		}},
	})
	if err != nil {
		return nil, err
	}

	instances := make([]InstanceDetails, 0)
	for _, reservation := range output.Reservations {
		for _, instance := range reservation.Instances {
			instances = append(instances, *toDetails(instance))
		}
	}

	return instances, nil
}

func (p *Ec2Provider) findByName(ctx context.Context, name string) (*ec2.Instance, error) {
	output, err := p.client.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("tag:Name"),
				Values: aws.StringSlice([]string{name}),
			},
			{
				Name:   aws.String("instance-state-name"),
				Values: aws.StringSlice([]string{"pending", "running", "stopping", "stopped"}),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	for _, reservation := range output.Reservations {
		if len(reservation.Instances) > 0 {
			return reservation.Instances[0], nil
		}
	}

	return nil, utils.ErrorInstanceNotFound
}

func toDetails(instance *ec2.Instance) *InstanceDetails {
	tags := make(map[string]string)
	for _, tag := range instance.Tags {
		tags[aws.StringValue(tag.Key)] = aws.StringValue(tag.Value)
	}

	details := &InstanceDetails{
		Id:           aws.StringValue(instance.InstanceId),
		Name:         tags["Name"],
		InstanceType: aws.StringValue(instance.InstanceType),
		Keypair:      aws.StringValue(instance.KeyName),
		PrivateIps:   make([]string, 0),
		PublicIps:    make([]string, 0),
		Tags:         tags,
	}

	if instance.State != nil {
		details.State = aws.StringValue(instance.State.Name)
	}
	if instance.PrivateIpAddress != nil {
		details.PrivateIps = append(details.PrivateIps, aws.StringValue(instance.PrivateIpAddress))
	}
	if instance.PublicIpAddress != nil {
		details.PublicIps = append(details.PublicIps, aws.StringValue(instance.PublicIpAddress))
	}

	return details
}

func toEc2Tags(tags map[string]string) []*ec2.Tag {
	ec2Tags := make([]*ec2.Tag, 0, len(tags))
	for key, value := range tags {
		ec2Tags = append(ec2Tags, &ec2.Tag{
			Key:   aws.String(key),
			Value: aws.String(value),
		})
	}

	return ec2Tags
}
