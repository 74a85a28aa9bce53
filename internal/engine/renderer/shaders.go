package renderer

// The displacement texture stores (x offset, normalised height, z offset,
// jacobian) per texel; the normal texture stores (slope x, slope z, dxDx,
// dzDz). The height channel is scaled back up by heightAmp in the vertex
// stage. Choppy offsets arrive pre-scaled, so the choppy uniform is carried
// for the block layout but not re-applied here.
const waterVertexShader = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;

layout(std140) uniform VertexBlock {
	mat4 model;
	mat4 view;
	mat4 proj;
	float heightAmp;
	float choppy;
};

uniform sampler2D displacementMap;

out vec2 vUV;
out vec3 vWorldPos;
out float vJacobian;

void main() {
	vec4 d = texture(displacementMap, aUV);
	vec3 displaced = aPos + vec3(d.x, d.y * heightAmp, d.z);
	vec4 world = model * vec4(displaced, 1.0);

	vUV = aUV;
	vWorldPos = world.xyz;
	vJacobian = d.w;
	gl_Position = proj * view * world;
}
`

const waterFragmentShader = `#version 410 core

in vec2 vUV;
in vec3 vWorldPos;
in float vJacobian;

layout(std140) uniform SurfaceBlock {
	vec3 camPos;
	vec3 sunDir;
	vec4 sunColor;
	float terrainDepth;
	float skyIntensity;
	float specularIntensity;
	float specularHighlights;
	vec3 absorpCoef;
	vec3 scatterCoef;
	vec3 backscatterCoef;
};

uniform sampler2D normalMap;

out vec4 fragColor;

void main() {
	vec4 nd = texture(normalMap, vUV);
	vec3 normal = normalize(vec3(-nd.x, 1.0, -nd.y));

	vec3 toCam = normalize(camPos - vWorldPos);
	vec3 toSun = normalize(sunDir);
	vec3 sun = sunColor.rgb * sunColor.a;

	// Attenuate the upwelling light over the water column down to the
	// terrain below, then add the backscatter tint near the surface.
	vec3 attenuation = exp(-(absorpCoef + scatterCoef) * terrainDepth);
	vec3 waterColor = skyIntensity * scatterCoef * attenuation
		+ backscatterCoef * scatterCoef;

	float diffuse = max(dot(normal, toSun), 0.0);
	vec3 color = waterColor * (0.2 + 0.8 * diffuse) * sun;

	vec3 halfway = normalize(toSun + toCam);
	float spec = pow(max(dot(normal, halfway), 0.0), specularHighlights);
	color += specularIntensity * spec * sun;

	// Jacobian below one marks wave folding; fade towards foam white.
	float foam = clamp(1.0 - vJacobian, 0.0, 1.0);
	color = mix(color, vec3(0.95), foam * foam);

	fragColor = vec4(color, 1.0);
}
`
